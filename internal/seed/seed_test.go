package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/services/fakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeder() (*Seeder, *fakes.UserStore, *fakes.RoleStore, *fakes.LanguageStore) {
	roles := fakes.NewRoleStore()
	users := fakes.NewUserStore(roles)
	languages := fakes.NewLanguageStore()
	return &Seeder{
		Roles:     roles,
		Users:     users,
		Languages: languages,
		Hasher:    fakes.Hasher{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, users, roles, languages
}

func TestSeeder_Run(t *testing.T) {
	s, users, roles, languages := newSeeder()
	ctx := context.Background()

	require.NoError(t, s.Run(ctx, AdminCredentials{Email: "admin@vardforalla.se", Password: "Admin123!"}))

	_, err := roles.FindByName(ctx, models.RoleAdmin)
	assert.NoError(t, err)
	_, err = roles.FindByName(ctx, models.RoleUser)
	assert.NoError(t, err)

	admin, err := users.FindByEmail(ctx, "admin@vardforalla.se")
	require.NoError(t, err)
	assert.True(t, admin.IsActive)
	assert.True(t, admin.IsEmailVerified)
	assert.Equal(t, "hashed:Admin123!", admin.PasswordHash)

	adminRoles, err := users.Roles(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleAdmin}, adminRoles)

	list, err := languages.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(DefaultLanguages))
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	s, users, _, languages := newSeeder()
	ctx := context.Background()
	creds := AdminCredentials{Email: "admin@vardforalla.se", Password: "Admin123!"}

	require.NoError(t, s.Run(ctx, creds))
	require.NoError(t, s.Run(ctx, creds))

	assert.Equal(t, 1, users.Len())
	list, err := languages.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(DefaultLanguages))
}

func TestSeeder_SkipsAdminWithoutCredentials(t *testing.T) {
	s, users, _, _ := newSeeder()

	require.NoError(t, s.Run(context.Background(), AdminCredentials{}))
	assert.Equal(t, 0, users.Len())
}

func TestSeeder_SkipsAdminWhenUsersExist(t *testing.T) {
	s, users, _, _ := newSeeder()
	users.Put(models.User{Email: "someone@example.se"})

	require.NoError(t, s.Run(context.Background(), AdminCredentials{Email: "admin@vardforalla.se", Password: "Admin123!"}))
	assert.Equal(t, 1, users.Len())
}
