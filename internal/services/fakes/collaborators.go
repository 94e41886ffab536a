package fakes

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/security"
	"github.com/stretchr/testify/mock"
)

const hashPrefix = "hashed:"

// Hasher is a reversible stand-in for bcrypt.
type Hasher struct{}

func (Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", security.ErrEmptyPassword
	}
	if len(password) > security.MaxPasswordBytes {
		return "", security.ErrPasswordTooLong
	}
	return hashPrefix + password, nil
}

func (Hasher) Verify(password, hash string) bool {
	return strings.HasPrefix(hash, hashPrefix) && strings.TrimPrefix(hash, hashPrefix) == password
}

// Tokens issues predictable tokens and counts session tokens.
type Tokens struct {
	mu            sync.Mutex
	opaque        int
	SessionIssued int
	Err           error
}

func (t *Tokens) IssueSessionToken(user *models.User, roles []string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Err != nil {
		return "", t.Err
	}
	t.SessionIssued++
	return fmt.Sprintf("session-%s-%s", user.ID, strings.Join(roles, ",")), nil
}

func (t *Tokens) IssueOpaqueToken() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Err != nil {
		return "", t.Err
	}
	t.opaque++
	return fmt.Sprintf("opaque-%d", t.opaque), nil
}

func (t *Tokens) Sessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.SessionIssued
}

// Mailer records sends through testify/mock expectations.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendVerification(ctx context.Context, email, token, displayName string) error {
	args := m.Called(ctx, email, token, displayName)
	return args.Error(0)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, email, token, displayName string) error {
	args := m.Called(ctx, email, token, displayName)
	return args.Error(0)
}

func (m *Mailer) SendWelcome(ctx context.Context, email, displayName string) error {
	args := m.Called(ctx, email, displayName)
	return args.Error(0)
}
