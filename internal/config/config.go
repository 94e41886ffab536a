package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session tokens
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	JWTAccessExpiry time.Duration

	// Credential lifecycle
	EmailVerificationTTL time.Duration
	PasswordResetTTL     time.Duration
	BcryptCost           int
	AppBaseURL           string

	// Bootstrap admin (seed only)
	AdminEmail    string
	AdminPassword string

	// Server
	Port        string
	CORSOrigins string

	// Observability
	LogRetention time.Duration
	SentryDSN    string
	AppEnv       string
}

var defaults = map[string]any{
	"DB_HOST":    "localhost",
	"DB_PORT":    "5432",
	"DB_USER":    "postgres",
	"DB_NAME":    "vardforalla",
	"DB_SSLMODE": "disable",

	"JWT_ISSUER":        "vardforalla",
	"JWT_AUDIENCE":      "vardforalla-web",
	"JWT_ACCESS_EXPIRY": "8h",

	"EMAIL_VERIFICATION_TTL": "168h",
	"PASSWORD_RESET_TTL":     "1h",
	"BCRYPT_COST":            12,
	"APP_BASE_URL":           "http://localhost:5173",

	"PORT":         "8080",
	"CORS_ORIGINS": "*",

	"LOG_RETENTION": "720h",
	"APP_ENV":       "development",
}

// Load reads configuration from the environment, falling back to defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return &Config{
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		JWTAudience:     v.GetString("JWT_AUDIENCE"),
		JWTAccessExpiry: durationOr(v, "JWT_ACCESS_EXPIRY", 8*time.Hour),

		EmailVerificationTTL: durationOr(v, "EMAIL_VERIFICATION_TTL", 7*24*time.Hour),
		PasswordResetTTL:     durationOr(v, "PASSWORD_RESET_TTL", time.Hour),
		BcryptCost:           v.GetInt("BCRYPT_COST"),
		AppBaseURL:           v.GetString("APP_BASE_URL"),

		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),

		Port:        v.GetString("PORT"),
		CORSOrigins: v.GetString("CORS_ORIGINS"),

		LogRetention: durationOr(v, "LOG_RETENTION", 30*24*time.Hour),
		SentryDSN:    v.GetString("SENTRY_DSN"),
		AppEnv:       v.GetString("APP_ENV"),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is required"))
	}
	if c.DBPassword == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	return errors.Join(errs...)
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// durationOr falls back when the value is unparseable or not positive.
func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d := v.GetDuration(key)
	if d <= 0 {
		return fallback
	}
	return d
}
