package domain

import "github.com/google/uuid"

// SearchType names the entity class a search hit belongs to.
type SearchType string

const (
	SearchTypeArticle SearchType = "article"
	SearchTypeFeed    SearchType = "feed"
	SearchTypeTag     SearchType = "tag"
	SearchTypeFolder  SearchType = "folder"
)

// SearchHit is one per-type search result with its raw relevance score.
// Score combines the full-text match indicator with trigram similarity.
type SearchHit struct {
	Type    SearchType  `json:"type"`
	ID      uuid.UUID   `json:"id"`
	Title   string      `json:"title"`
	Score   float64     `json:"-"`
	Payload interface{} `json:"payload,omitempty"`
}

// SearchPage is an offset-paginated slice of hits with the total count.
type SearchPage struct {
	Hits   []SearchHit `json:"results"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// UniversalResult is a merged cross-type hit. The weighted score used for
// ordering is deliberately not exposed.
type UniversalResult struct {
	Type    SearchType  `json:"type"`
	ID      uuid.UUID   `json:"id"`
	Title   string      `json:"title"`
	Payload interface{} `json:"payload,omitempty"`
}

// Universal search weights; feeds rank highest, tags lowest.
var SearchTypeWeights = map[SearchType]float64{
	SearchTypeArticle: 1.8,
	SearchTypeFeed:    2.0,
	SearchTypeTag:     0.8,
	SearchTypeFolder:  1.5,
}
