package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Discard,
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicate)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23505"}), ErrDuplicate)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "is_active", "is_email_verified"}).
		AddRow(id.String(), "anna@example.se", "hash", true, true)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "anna@example.se")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.True(t, user.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByVerificationToken_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email_verification_token = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.FindByVerificationToken(context.Background(), "missing")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateWithRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	user := &models.User{ID: uuid.New(), Email: "anna@example.se", PasswordHash: "h", IsActive: true}
	roleID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(user.ID))
	mock.ExpectExec(`INSERT INTO "user_roles"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateWithRole(context.Background(), user, roleID, time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateWithRole_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"})
	mock.ExpectRollback()

	err := repo.CreateWithRole(context.Background(), &models.User{ID: uuid.New(), Email: "anna@example.se", PasswordHash: "h", IsActive: true}, uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateWithRole_RoleFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	user := &models.User{ID: uuid.New(), Email: "anna@example.se", PasswordHash: "h", IsActive: true}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(user.ID))
	mock.ExpectExec(`INSERT INTO "user_roles"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.CreateWithRole(context.Background(), user, uuid.New(), time.Now())
	assert.ErrorContains(t, err, "failed to assign role")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Roles(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT "roles"."name" FROM "user_roles" JOIN roles ON roles.id = user_roles.role_id WHERE user_roles.user_id = \$1 ORDER BY roles.name`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Admin").AddRow("User"))

	roles, err := repo.Roles(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin", "User"}, roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_RolesUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`FROM "user_roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	roles, err := repo.Roles(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
}


func TestRoutineRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoutineRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "routines" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	routine, err := repo.FindByID(context.Background(), uuid.New())
	assert.Nil(t, routine)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineRepository_SetActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoutineRepository(db)

	mock.ExpectExec(`UPDATE "routines" SET "is_active"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetActive(context.Background(), uuid.New(), false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineRepository_SetActive_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoutineRepository(db)

	mock.ExpectExec(`UPDATE "routines"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoutineRepository_UpdateWritesEditableColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoutineRepository(db)

	mock.ExpectExec(`UPDATE "routines" SET .*"title"=.*WHERE id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Routine{ID: uuid.New(), Title: "Handhygien", Category: "Hygien"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStepRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStepRepository(db)

	mock.ExpectExec(`DELETE FROM "routine_steps" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "routine_steps" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), uuid.New()))
	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLanguageRepository_FindByCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLanguageRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "languages" WHERE code = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}).AddRow(id.String(), "SWE", "Svenska"))

	language, err := repo.FindByCode(context.Background(), "SWE")
	require.NoError(t, err)
	assert.Equal(t, "Svenska", language.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLanguageRepository_CreateDuplicateCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLanguageRepository(db)

	mock.ExpectQuery(`INSERT INTO "languages"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_languages_code"})

	err := repo.Create(context.Background(), &models.Language{Code: "SWE", Name: "Svenska"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestTagRepository_AttachIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)
	routineID, tagID := uuid.New(), uuid.New()

	mock.ExpectExec(`INSERT INTO routine_tags \(routine_id, tag_id\) VALUES \(\$1, \$2\) ON CONFLICT DO NOTHING`).
		WithArgs(routineID, tagID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Attach(context.Background(), routineID, tagID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_DetachMissingLink(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectExec(`DELETE FROM routine_tags WHERE routine_id = \$1 AND tag_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Detach(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTranslationRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTranslationRepository(db)

	mock.ExpectExec(`UPDATE "step_translations" SET "text"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), &models.StepTranslation{ID: uuid.New(), Text: "Wash your hands"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSystemLogRepository_DeleteBefore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSystemLogRepository(db)
	cutoff := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM "system_logs" WHERE timestamp < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	deleted, err := repo.DeleteBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSystemLogRepository_CreateBatchEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSystemLogRepository(db)

	require.NoError(t, repo.CreateBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
