package security

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintSessionToken(t *testing.T) {
	token, err := MintSessionToken()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, token.SessionID)
	assert.Len(t, token.CookieHash, 64)

	parsedID, ok := ParseSessionCookie(token.CookieValue)
	require.True(t, ok)
	assert.Equal(t, token.SessionID, parsedID)

	assert.True(t, VerifyCookieHash(token.CookieValue, token.CookieHash))
	assert.False(t, VerifyCookieHash(token.CookieValue+"x", token.CookieHash))
}

func TestParseSessionCookie_Malformed(t *testing.T) {
	for _, value := range []string{"", "no-dot-here", "not-a-uuid.secret", "."} {
		_, ok := ParseSessionCookie(value)
		assert.False(t, ok, "cookie %q must not parse", value)
	}
}

func TestMintCSRFToken(t *testing.T) {
	first, err := MintCSRFToken(32)
	require.NoError(t, err)
	second, err := MintCSRFToken(32)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)

	// Zero length falls back to the default
	fallback, err := MintCSRFToken(0)
	require.NoError(t, err)
	assert.NotEmpty(t, fallback)
}
