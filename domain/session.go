package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session represents a user session. The raw cookie value is never stored;
// CookieHash holds its SHA-256.
type Session struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	CookieHash string    `json:"-"`
	ExpiresAt  time.Time `json:"expires_at"`
	LastUsed   time.Time `json:"last_used"`
	UserAgent  *string   `json:"user_agent,omitempty"`
	IPAddress  *string   `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewSession creates a session record with validation.
func NewSession(userID uuid.UUID, cookieHash string, duration time.Duration) (*Session, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID is required")
	}

	if cookieHash == "" {
		return nil, fmt.Errorf("cookie hash is required")
	}

	if duration <= 0 {
		return nil, fmt.Errorf("session duration must be positive")
	}

	now := time.Now()
	return &Session{
		ID:         uuid.New(),
		UserID:     userID,
		CookieHash: cookieHash,
		ExpiresAt:  now.Add(duration),
		LastUsed:   now,
		CreatedAt:  now,
	}, nil
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValid checks if the session is usable
func (s *Session) IsValid() bool {
	return !s.IsExpired()
}

// UpdateActivity bumps the last-used timestamp
func (s *Session) UpdateActivity() {
	s.LastUsed = time.Now()
}

// SessionInfo is the shape returned by GET /auth/sessions.
type SessionInfo struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
	ExpiresAt time.Time `json:"expires_at"`
	UserAgent *string   `json:"user_agent,omitempty"`
	IPAddress *string   `json:"ip_address,omitempty"`
	Current   bool      `json:"current"`
}
