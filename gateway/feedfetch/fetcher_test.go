package feedfetch

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(opts Options) *Gateway {
	if opts.UserAgent == "" {
		opts.UserAgent = "lector/1.0 (+https://lector.example)"
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 5 * time.Second
	}
	if opts.MaxFeedSizeMB == 0 {
		opts.MaxFeedSizeMB = 5
	}
	if opts.PerHostInterval == 0 {
		opts.PerHostInterval = time.Millisecond
	}

	gw := New(opts, slog.Default())
	// Test servers listen on loopback, which the real guard blocks.
	gw.validate = func(string) error { return nil }
	return gw
}

func TestFetch_Success(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	gw := newTestGateway(Options{})

	result, err := gw.Fetch(context.Background(), server.URL+"/feed.xml")
	require.NoError(t, err)

	assert.Equal(t, "<rss/>", string(result.Body))
	assert.Equal(t, "application/rss+xml", result.ContentType)
	assert.Equal(t, server.URL+"/feed.xml", result.FinalURL)
	assert.Contains(t, gotUserAgent, "lector/")
}

func TestFetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<rss/>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gw := newTestGateway(Options{})

	result, err := gw.Fetch(context.Background(), server.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/new", result.FinalURL)
}

func TestFetch_SizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("x"), 1<<20+1))
	}))
	defer server.Close()

	gw := newTestGateway(Options{MaxFeedSizeMB: 1})

	_, err := gw.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size limit")
}

func TestFetch_UpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gw := newTestGateway(Options{})

	_, err := gw.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetch_RobotsDisallow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<rss/>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gw := newTestGateway(Options{CheckRobots: true})

	_, err := gw.Fetch(context.Background(), server.URL+"/private/feed.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "robots.txt")

	result, err := gw.Fetch(context.Background(), server.URL+"/public/feed.xml")
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(result.Body))
}

func TestFetch_RobotsMissingAllows(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<rss/>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gw := newTestGateway(Options{CheckRobots: true})

	_, err := gw.Fetch(context.Background(), server.URL+"/feed.xml")
	assert.NoError(t, err)
}

func TestFetch_RobotsErrorFailsOpen(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<rss/>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gw := newTestGateway(Options{CheckRobots: true})

	_, err := gw.Fetch(context.Background(), server.URL+"/feed.xml")
	assert.NoError(t, err)
}

func TestValidateTarget(t *testing.T) {
	blocked := []string{
		"http://localhost/feed",
		"http://127.0.0.1/feed",
		"http://10.1.2.3/feed",
		"http://172.16.0.1/feed",
		"http://192.168.1.1/feed",
		"http://169.254.169.254/latest/meta-data",
		"http://[::1]/feed",
		"http://printer.local/feed",
		"http://metadata.google.internal/feed",
		"ftp://example.com/feed",
		"http:///feed",
	}
	for _, target := range blocked {
		assert.Error(t, validateTarget(target), "target %q must be blocked", target)
	}

	// Public literal IPs skip DNS and pass
	assert.NoError(t, validateTarget("https://93.184.216.34/feed.xml"))
}
