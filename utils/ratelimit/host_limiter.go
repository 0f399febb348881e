// Package ratelimit provides the per-host politeness limiter applied to
// all outbound feed fetches.
package ratelimit

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostLimiter spaces fetches to the same host at least interval apart.
// Hosts are tracked case-insensitively; each gets its own token bucket
// with a burst of one.
type HostLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	interval time.Duration
}

func NewHostLimiter(interval time.Duration) *HostLimiter {
	return &HostLimiter{
		buckets:  make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until the host's next fetch slot or ctx is cancelled.
func (h *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if parsed.Host == "" {
		return errors.New("missing host in URL")
	}

	return h.bucket(strings.ToLower(parsed.Host)).Wait(ctx)
}

func (h *HostLimiter) bucket(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	if b, ok := h.buckets[host]; ok {
		return b
	}

	b := rate.NewLimiter(rate.Every(h.interval), 1)
	h.buckets[host] = b
	return b
}
