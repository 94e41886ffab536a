package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "")

	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 8*time.Hour, cfg.JWTAccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.EmailVerificationTTL)
	assert.Equal(t, time.Hour, cfg.PasswordResetTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.LogRetention)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PASSWORD_RESET_TTL", "30m")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("APP_BASE_URL", "https://vardforalla.se")

	cfg := Load()

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.PasswordResetTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "https://vardforalla.se", cfg.AppBaseURL)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")

	cfg := Load()

	assert.Equal(t, 8*time.Hour, cfg.JWTAccessExpiry)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	cfg.JWTSecret = "k"
	cfg.DBPassword = "p"
	assert.NoError(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "h", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "1", DBSSLMode: "disable"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable TimeZone=UTC", cfg.DSN())
}
