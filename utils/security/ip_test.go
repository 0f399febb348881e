package security

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP_DirectPeer(t *testing.T) {
	resolver := NewIPResolver(nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	req.Header.Set("X-Forwarded-For", "198.51.100.1")

	// Untrusted peer: forwarded headers are ignored
	assert.Equal(t, "203.0.113.9", resolver.ClientIP(req))
}

func TestClientIP_TrustedProxyForwardedFor(t *testing.T) {
	resolver := NewIPResolver([]string{"10.0.0.0/8"})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.1.2.3:443"
	req.Header.Set("X-Forwarded-For", "192.168.1.5, 198.51.100.7, 10.0.0.1")

	// First public hop wins; private hops are skipped
	assert.Equal(t, "198.51.100.7", resolver.ClientIP(req))
}

func TestClientIP_TrustedProxyRealIPFallback(t *testing.T) {
	resolver := NewIPResolver([]string{"10.0.0.1"})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:443"
	req.Header.Set("X-Real-IP", "198.51.100.7")

	assert.Equal(t, "198.51.100.7", resolver.ClientIP(req))
}

func TestClientIP_TrustedProxyNoHeaders(t *testing.T) {
	resolver := NewIPResolver([]string{"10.0.0.0/8"})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.9.9.9:443"

	assert.Equal(t, "10.9.9.9", resolver.ClientIP(req))
}

func TestNewIPResolver_SkipsGarbageEntries(t *testing.T) {
	resolver := NewIPResolver([]string{"not-a-cidr", "", "10.0.0.0/8"})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.1.1.1:80"
	req.Header.Set("X-Forwarded-For", "198.51.100.7")

	assert.Equal(t, "198.51.100.7", resolver.ClientIP(req))
}
