package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lector/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserRepository_CreateMapsUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock, testLogger())

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: "pbkdf2:...",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	mock.ExpectExec(`INSERT INTO personalization\.users`).
		WithArgs(user.ID, user.Username, user.PasswordHash, user.IsAdmin, user.CreatedAt, user.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsernameIsCaseInsensitive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock, testLogger())

	userID := uuid.New()
	now := time.Now()

	// The lookup must go through lower() so it hits the functional index.
	mock.ExpectQuery(`WHERE lower\(username\) = lower\(\$1\)`).
		WithArgs("Alice").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "username", "password_hash", "is_admin", "created_at", "updated_at"}).
			AddRow(userID, "alice", "hash", true, now, now))

	user, err := repo.GetByUsername(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsAdmin)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock, testLogger())

	userID := uuid.New()
	mock.ExpectQuery(`SELECT id, username, password_hash`).
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePasswordMissingUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock, testLogger())

	userID := uuid.New()
	mock.ExpectExec(`UPDATE personalization\.users`).
		WithArgs(userID, "new-hash", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdatePassword(context.Background(), userID, "new-hash")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
