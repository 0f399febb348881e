// Package feedfetch is the guarded outbound HTTP gateway for feed
// documents: SSRF validation, robots.txt, per-host politeness, size and
// time budgets.
package feedfetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"lector/port"
	apperrors "lector/utils/errors"
	"lector/utils/ratelimit"
)

type Options struct {
	UserAgent       string
	RequestTimeout  time.Duration
	MaxFeedSizeMB   int
	PerHostInterval time.Duration

	// CheckRobots enables the robots.txt consult before the fetch.
	// Subscribed feed refreshes skip it; discovery fetches use it.
	CheckRobots bool
}

type Gateway struct {
	client      *http.Client
	robots      *robotsCache
	hostLimiter *ratelimit.HostLimiter
	opts        Options
	logger      *slog.Logger

	// validateTarget is swappable in tests to avoid real DNS.
	validate func(rawURL string) error
}

var _ port.FeedFetchGateway = (*Gateway)(nil)

func New(opts Options, logger *slog.Logger) *Gateway {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.RequestTimeout,
	}

	gw := &Gateway{
		client:      client,
		hostLimiter: ratelimit.NewHostLimiter(opts.PerHostInterval),
		opts:        opts,
		logger:      logger.With("component", "feed_fetch_gateway"),
		validate:    validateTarget,
	}
	gw.robots = newRobotsCache(client, opts.UserAgent, gw.logger)

	return gw
}

// Fetch retrieves a feed document within the configured guards. The
// response body is capped at MaxFeedSizeMB and read fully before return.
func (g *Gateway) Fetch(ctx context.Context, feedURL string) (*port.FetchResult, error) {
	if err := g.validate(feedURL); err != nil {
		return nil, err
	}

	if g.opts.CheckRobots {
		allowed, err := g.robots.Allowed(ctx, feedURL)
		if err != nil {
			// fail-open: unreachable robots.txt does not block the fetch
			g.logger.Warn("robots.txt check failed, proceeding", "url", feedURL, "error", err)
		} else if !allowed {
			return nil, apperrors.NewValidationContextError(
				fmt.Sprintf("robots.txt disallows fetching %s", feedURL),
				"gateway", "feedfetch", "fetch", nil)
		}
	}

	if err := g.hostLimiter.Wait(ctx, feedURL); err != nil {
		return nil, apperrors.NewRateLimitContextError(
			"per-host rate limit wait interrupted",
			"gateway", "feedfetch", "fetch", err, map[string]interface{}{"url": feedURL})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationContextError(
			fmt.Sprintf("invalid feed URL: %v", err),
			"gateway", "feedfetch", "fetch", nil)
	}
	req.Header.Set("User-Agent", g.opts.UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamContextError(
			"feed fetch failed",
			"gateway", "feedfetch", "fetch", err, map[string]interface{}{"url": feedURL})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstreamContextError(
			fmt.Sprintf("feed fetch returned status %d", resp.StatusCode),
			"gateway", "feedfetch", "fetch", nil,
			map[string]interface{}{"url": feedURL, "status": resp.StatusCode})
	}

	maxBytes := int64(g.opts.MaxFeedSizeMB) * 1024 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, apperrors.NewUpstreamContextError(
			"failed to read feed body",
			"gateway", "feedfetch", "fetch", err, map[string]interface{}{"url": feedURL})
	}
	if int64(len(body)) > maxBytes {
		return nil, apperrors.NewValidationContextError(
			fmt.Sprintf("feed exceeds %dMB size limit", g.opts.MaxFeedSizeMB),
			"gateway", "feedfetch", "fetch", map[string]interface{}{"url": feedURL})
	}

	finalURL := feedURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &port.FetchResult{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    finalURL,
	}, nil
}
