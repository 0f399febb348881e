package domain

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Cursor is an opaque pagination bookmark: base64(JSON) over the sort key.
// Score is only present for relevance-ordered listings.
type Cursor struct {
	PublishedAt time.Time `json:"published_at"`
	ID          uuid.UUID `json:"id"`
	Score       *float64  `json:"score,omitempty"`
}

// Encode renders the cursor as URL-safe base64 JSON.
func (c *Cursor) Encode() string {
	if c == nil {
		return ""
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeCursor parses an encoded cursor. Malformed base64 or JSON yields
// nil, which callers treat as "first page".
func DecodeCursor(encoded string) *Cursor {
	if encoded == "" {
		return nil
	}

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}

	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil
	}

	if c.ID == uuid.Nil && c.PublishedAt.IsZero() {
		return nil
	}

	return &c
}
