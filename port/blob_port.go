package port

//go:generate mockgen -source=blob_port.go -destination=../mocks/mock_blob_port.go -package=mocks

import (
	"context"
	"io"
	"time"
)

// BlobStore persists OPML uploads and exports under opaque keys.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader) error
	// Open returns the blob content and its modification time.
	Open(ctx context.Context, key string) (io.ReadCloser, time.Time, error)
	Delete(ctx context.Context, key string) error
}
