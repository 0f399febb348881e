package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserContext represents the authenticated user context for requests
type UserContext struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	SessionID uuid.UUID `json:"session_id"`
	LoginAt   time.Time `json:"login_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsValid checks if the user context is usable and not expired
func (uc *UserContext) IsValid() bool {
	return uc.UserID != uuid.Nil && uc.ExpiresAt.After(time.Now())
}

// コンテキストキー
type contextKey string

const UserContextKey contextKey = "user_context"

// ヘルパー関数
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(UserContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrInvalidUserContext
	}

	if !user.IsValid() {
		return nil, ErrInvalidUserContext
	}

	return user, nil
}

func SetUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}
