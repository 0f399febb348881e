package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeTagName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		expectErr bool
	}{
		{"plain name", "golang", "golang", false},
		{"trims whitespace", "  golang  ", "golang", false},
		{"collapses internal whitespace", "go \t  lang", "go lang", false},
		{"strips control characters", "go\x00lang\x1b", "golang", false},
		{"empty after sanitization", " \x00 \t ", "", true},
		{"too long", strings.Repeat("a", 65), "", true},
		{"exactly max length", strings.Repeat("a", 64), strings.Repeat("a", 64), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeTagName(tt.input, 64)

			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitCategoryTags(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		want       []string
	}{
		{
			name:       "comma-separated category splits",
			categories: []string{"tech, programming"},
			want:       []string{"tech", "programming"},
		},
		{
			name:       "duplicates suppressed preserving first occurrence",
			categories: []string{"tech", "news, tech", "news"},
			want:       []string{"tech", "news"},
		},
		{
			name:       "empty fragments dropped",
			categories: []string{"a,, b", " "},
			want:       []string{"a", "b"},
		},
		{
			name:       "nil input",
			categories: nil,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCategoryTags(tt.categories))
		})
	}
}
