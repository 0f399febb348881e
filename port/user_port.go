package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go -package=mocks

import (
	"context"
	"time"

	"lector/domain"

	"github.com/google/uuid"
)

// UserRepository defines user data access.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Count(ctx context.Context) (int, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error
}

// SessionRepository defines session data access. Expired rows are treated
// as absent by the lookup methods.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	TouchLastUsed(ctx context.Context, sessionID uuid.UUID, at time.Time) error
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteOldestForUser(ctx context.Context, userID uuid.UUID) error
}

// PreferencesRepository defines per-user settings access. Get returns
// defaults when no row exists yet.
type PreferencesRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error)
	Upsert(ctx context.Context, prefs *domain.Preferences) error
}
