package feedfetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/temoto/robotstxt"
)

const (
	robotsCacheSize = 512
	robotsCacheTTL  = 24 * time.Hour
	robotsMaxBytes  = 512 * 1024
)

type robotsEntry struct {
	group     *robotstxt.Group
	fetchedAt time.Time
}

// robotsCache resolves and caches per-host robots.txt groups for our
// user agent. Fetch failures are reported to the caller, which treats
// them as allow (fail-open).
type robotsCache struct {
	client    *http.Client
	userAgent string
	cache     *lru.Cache[string, robotsEntry]
	logger    *slog.Logger
}

func newRobotsCache(client *http.Client, userAgent string, logger *slog.Logger) *robotsCache {
	cache, _ := lru.New[string, robotsEntry](robotsCacheSize)
	return &robotsCache{
		client:    client,
		userAgent: userAgent,
		cache:     cache,
		logger:    logger,
	}
}

// Allowed reports whether robots.txt permits fetching the URL.
func (r *robotsCache) Allowed(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, err
	}

	key := parsed.Scheme + "://" + parsed.Host

	entry, ok := r.cache.Get(key)
	if !ok || time.Since(entry.fetchedAt) > robotsCacheTTL {
		group, err := r.fetchGroup(ctx, key)
		if err != nil {
			return false, err
		}
		entry = robotsEntry{group: group, fetchedAt: time.Now()}
		r.cache.Add(key, entry)
	}

	// A nil group means the host serves no robots.txt; everything goes.
	if entry.group == nil {
		return true, nil
	}

	return entry.group.Test(parsed.Path), nil
}

func (r *robotsCache) fetchGroup(ctx context.Context, origin string) (*robotstxt.Group, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 4xx means "no robots policy" per the de-facto standard.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("robots.txt returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, robotsMaxBytes))
	if err != nil {
		return nil, err
	}

	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, err
	}

	return robots.FindGroup(r.userAgent), nil
}
