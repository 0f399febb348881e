package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// UserTag is a user-scoped tag. Names are unique per user after sanitization.
type UserTag struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	ArticleCount int       `json:"article_count" db:"article_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ArticleTag links a user's article projection to one of their tags.
type ArticleTag struct {
	UserArticleID uuid.UUID `json:"user_article_id" db:"user_article_id"`
	UserTagID     uuid.UUID `json:"user_tag_id" db:"user_tag_id"`
}

// SanitizeTagName strips control characters, collapses internal whitespace,
// and trims. Empty and over-long results are rejected.
func SanitizeTagName(name string, maxLength int) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)

	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if cleaned == "" {
		return "", fmt.Errorf("tag name is empty after sanitization")
	}

	if len(cleaned) > maxLength {
		return "", fmt.Errorf("tag name exceeds %d characters", maxLength)
	}

	return cleaned, nil
}

// SplitCategoryTags splits a feed category string into tag names: comma
// separation, whitespace trim, de-dup preserving first occurrence.
func SplitCategoryTags(categories []string) []string {
	seen := make(map[string]struct{})
	var names []string

	for _, category := range categories {
		for _, part := range strings.Split(category, ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names
}
