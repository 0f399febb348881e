package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	score := 0.85
	original := &Cursor{
		PublishedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
		ID:          uuid.New(),
		Score:       &score,
	}

	decoded := DecodeCursor(original.Encode())
	require.NotNil(t, decoded)

	assert.True(t, original.PublishedAt.Equal(decoded.PublishedAt))
	assert.Equal(t, original.ID, decoded.ID)
	require.NotNil(t, decoded.Score)
	assert.Equal(t, score, *decoded.Score)
}

func TestCursor_RoundTripWithoutScore(t *testing.T) {
	original := &Cursor{
		PublishedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
		ID:          uuid.New(),
	}

	decoded := DecodeCursor(original.Encode())
	require.NotNil(t, decoded)
	assert.Nil(t, decoded.Score)
}

func TestDecodeCursor_MalformedYieldsNil(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty string", ""},
		{"not base64", "!!!not-base64!!!"},
		{"base64 of non-JSON", "bm90LWpzb24"},
		{"base64 of wrong JSON shape", "eyJmb28iOiJiYXIifQ=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, DecodeCursor(tt.encoded))
		})
	}
}
