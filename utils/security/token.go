package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SessionToken is the minted cookie value plus its server-side hash.
type SessionToken struct {
	SessionID   uuid.UUID
	CookieValue string // {session_id}.{secret}; never stored
	CookieHash  string // hex SHA-256 of CookieValue; stored server-side
}

// MintSessionToken creates a session cookie value `{uuid}.{32-byte
// URL-safe secret}` and its storable hash.
func MintSessionToken() (*SessionToken, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}

	sessionID := uuid.New()
	cookieValue := sessionID.String() + "." + base64.RawURLEncoding.EncodeToString(secret)

	return &SessionToken{
		SessionID:   sessionID,
		CookieValue: cookieValue,
		CookieHash:  HashCookieValue(cookieValue),
	}, nil
}

// HashCookieValue produces the hex SHA-256 stored server-side.
func HashCookieValue(cookieValue string) string {
	sum := sha256.Sum256([]byte(cookieValue))
	return hex.EncodeToString(sum[:])
}

// ParseSessionCookie extracts the session id from a cookie value. The
// secret part is only ever checked through the hash comparison.
func ParseSessionCookie(cookieValue string) (uuid.UUID, bool) {
	idPart, _, found := strings.Cut(cookieValue, ".")
	if !found {
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, false
	}

	return sessionID, true
}

// VerifyCookieHash compares the hash of a presented cookie value against
// the stored hash in constant time.
func VerifyCookieHash(cookieValue, storedHash string) bool {
	return hmac.Equal([]byte(HashCookieValue(cookieValue)), []byte(storedHash))
}

// MintCSRFToken creates a URL-safe random token of the given byte length.
func MintCSRFToken(length int) (string, error) {
	if length <= 0 {
		length = 32
	}

	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate CSRF token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}
