package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lector/domain"

	"github.com/google/uuid"
)

// SessionRepository implements port.SessionRepository. Lookups treat
// expired rows as absent so verification never resurrects a dead session.
type SessionRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewSessionRepository(db DBTX, logger *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger.With("component", "session_repository"),
	}
}

const sessionColumns = `id, user_id, cookie_hash, expires_at, last_used, user_agent, ip_address, created_at`

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO personalization.user_sessions
			(id, user_id, cookie_hash, expires_at, last_used, user_agent, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier(ctx, r.db).Exec(ctx, query,
		session.ID, session.UserID, session.CookieHash, session.ExpiresAt,
		session.LastUsed, session.UserAgent, session.IPAddress, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM personalization.user_sessions
		WHERE id = $1 AND expires_at > now()`

	var s domain.Session
	err := querier(ctx, r.db).QueryRow(ctx, query, sessionID).Scan(
		&s.ID, &s.UserID, &s.CookieHash, &s.ExpiresAt, &s.LastUsed,
		&s.UserAgent, &s.IPAddress, &s.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

func (r *SessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM personalization.user_sessions
		WHERE user_id = $1 AND expires_at > now()
		ORDER BY last_used DESC`

	rows, err := querier(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.CookieHash, &s.ExpiresAt, &s.LastUsed,
			&s.UserAgent, &s.IPAddress, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &s)
	}

	return sessions, rows.Err()
}

func (r *SessionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM personalization.user_sessions
		WHERE user_id = $1 AND expires_at > now()`

	var count int
	if err := querier(ctx, r.db).QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return count, nil
}

func (r *SessionRepository) TouchLastUsed(ctx context.Context, sessionID uuid.UUID, at time.Time) error {
	query := `
		UPDATE personalization.user_sessions
		SET last_used = $2
		WHERE id = $1`

	if _, err := querier(ctx, r.db).Exec(ctx, query, sessionID, at); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}

	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	query := `
		DELETE FROM personalization.user_sessions
		WHERE id = $1 AND user_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query, sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM personalization.user_sessions WHERE user_id = $1`

	if _, err := querier(ctx, r.db).Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	return nil
}

// DeleteOldestForUser evicts the least recently used session. Called before
// insert when the active count has reached MAX_ACTIVE_SESSIONS.
func (r *SessionRepository) DeleteOldestForUser(ctx context.Context, userID uuid.UUID) error {
	query := `
		DELETE FROM personalization.user_sessions
		WHERE id = (
			SELECT id FROM personalization.user_sessions
			WHERE user_id = $1
			ORDER BY last_used ASC
			LIMIT 1
		)`

	if _, err := querier(ctx, r.db).Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to evict oldest session: %w", err)
	}

	return nil
}
