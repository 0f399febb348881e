package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lector/domain"

	"github.com/google/uuid"
)

// UserRepository implements port.UserRepository. Usernames are matched
// case-insensitively via the lower() unique index.
type UserRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewUserRepository(db DBTX, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO personalization.users (id, username, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier(ctx, r.db).Exec(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.IsAdmin, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, is_admin, created_at, updated_at
		FROM personalization.users
		WHERE id = $1`

	return r.scanOne(ctx, query, userID)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, is_admin, created_at, updated_at
		FROM personalization.users
		WHERE lower(username) = lower($1)`

	return r.scanOne(ctx, query, username)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := querier(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM personalization.users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE personalization.users
		SET password_hash = $2, updated_at = $3
		WHERE id = $1`

	tag, err := querier(ctx, r.db).Exec(ctx, query, userID, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error {
	query := `
		UPDATE personalization.users
		SET username = $2, updated_at = $3
		WHERE id = $1`

	tag, err := querier(ctx, r.db).Exec(ctx, query, userID, username, time.Now().UTC())
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update username: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := querier(ctx, r.db).QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
