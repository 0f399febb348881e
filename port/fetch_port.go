package port

//go:generate mockgen -source=fetch_port.go -destination=../mocks/mock_fetch_port.go -package=mocks

import "context"

// FetchResult is the raw outcome of one outbound feed fetch.
type FetchResult struct {
	Body        []byte
	ContentType string
	FinalURL    string
}

// FeedFetchGateway performs guarded outbound HTTP fetches of feed documents.
// Implementations enforce SSRF checks, robots.txt, per-host rate limits,
// response size caps, and the configured timeout.
type FeedFetchGateway interface {
	Fetch(ctx context.Context, feedURL string) (*FetchResult, error)
}
