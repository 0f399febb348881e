package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFeed_Health(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(minutesAgo int) *time.Time {
		ts := now.Add(-time.Duration(minutesAgo) * time.Minute)
		return &ts
	}

	tests := []struct {
		name          string
		lastFetchedAt *time.Time
		lastErrorAt   *time.Time
		want          FeedHealth
	}{
		{
			name: "never fetched and never errored is stale",
			want: FeedStale,
		},
		{
			name:          "recent fetch newer than error is healthy",
			lastFetchedAt: at(10),
			lastErrorAt:   at(30),
			want:          FeedHealthy,
		},
		{
			name:          "error newer than recent fetch is error",
			lastFetchedAt: at(10),
			lastErrorAt:   at(5),
			want:          FeedError,
		},
		{
			name:          "fetch over an hour ago is stale even with newer error",
			lastFetchedAt: at(90),
			lastErrorAt:   at(5),
			want:          FeedStale,
		},
		{
			name:          "fetch over an hour ago with older error is stale",
			lastFetchedAt: at(90),
			lastErrorAt:   at(120),
			want:          FeedStale,
		},
		{
			name:        "error only is error",
			lastErrorAt: at(5),
			want:        FeedError,
		},
		{
			name:          "recent fetch only is healthy",
			lastFetchedAt: at(10),
			want:          FeedHealthy,
		},
		{
			name:          "old fetch only is stale",
			lastFetchedAt: at(61),
			want:          FeedStale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := &Feed{
				LastFetchedAt: tt.lastFetchedAt,
				LastErrorAt:   tt.lastErrorAt,
			}
			assert.Equal(t, tt.want, feed.Health(now))
		})
	}
}

func TestContentSource_String(t *testing.T) {
	assert.Equal(t, "none", ContentSourceNone.String())
	assert.Equal(t, "media_description", ContentSourceMediaDescription.String())
	assert.Equal(t, "atom_content", ContentSourceAtomContent.String())
	assert.Equal(t, "content_encoded", ContentSourceContentEncoded.String())
}
