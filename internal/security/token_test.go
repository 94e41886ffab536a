package security

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, secret string, now func() time.Time) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(secret, "vardforalla", "vardforalla-web", time.Hour, WithTokenClock(now))
	require.NoError(t, err)
	return issuer
}

func TestTokenIssuer_SessionTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t, "super-secret", time.Now)
	user := &models.User{ID: uuid.New(), Email: "anna@example.se"}

	token, err := issuer.IssueSessionToken(user, []string{models.RoleAdmin, models.RoleUser})
	require.NoError(t, err)

	claims, err := issuer.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "anna@example.se", claims.Email)
	assert.Equal(t, []string{models.RoleAdmin, models.RoleUser}, claims.Roles)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	token, err := newTestIssuer(t, "right-secret", time.Now).IssueSessionToken(user, nil)
	require.NoError(t, err)

	_, err = newTestIssuer(t, "wrong-secret", time.Now).ParseSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	issuer := newTestIssuer(t, "secret", func() time.Time { return now })

	token, err := issuer.IssueSessionToken(&models.User{ID: uuid.New()}, nil)
	require.NoError(t, err)

	now = issued.Add(2 * time.Hour)
	_, err = issuer.ParseSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	_, err := newTestIssuer(t, "k", time.Now).ParseSessionToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", "iss", "aud", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSigningKey)
}

func TestTokenIssuer_OpaqueTokens(t *testing.T) {
	issuer := newTestIssuer(t, "k", time.Now)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := issuer.IssueOpaqueToken()
		require.NoError(t, err)
		assert.Len(t, token, 43)
		_, dup := seen[token]
		require.False(t, dup, "opaque token collided")
		seen[token] = struct{}{}
	}
}
