package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "tracking params and www dropped, scheme upgraded",
			input: "http://www.example.com/p/?utm_source=x&id=1",
			want:  "https://example.com/p?id=1",
		},
		{
			name:  "fragment removed",
			input: "https://example.com/article#comments",
			want:  "https://example.com/article",
		},
		{
			name:  "trailing slash removed except root",
			input: "https://example.com/blog/",
			want:  "https://example.com/blog",
		},
		{
			name:  "root path keeps slash",
			input: "https://example.com/",
			want:  "https://example.com/",
		},
		{
			name:  "host lowercased",
			input: "https://Example.COM/Path",
			want:  "https://example.com/Path",
		},
		{
			name:  "default https port dropped",
			input: "https://example.com:443/a",
			want:  "https://example.com/a",
		},
		{
			name:  "default http port dropped",
			input: "http://example.com:80/a",
			want:  "https://example.com/a",
		},
		{
			name:  "non-default port kept",
			input: "https://example.com:8443/a",
			want:  "https://example.com:8443/a",
		},
		{
			name:  "empty-valued params dropped",
			input: "https://example.com/a?id=1&empty=",
			want:  "https://example.com/a?id=1",
		},
		{
			name:  "utm family and click ids dropped",
			input: "https://example.com/a?utm_medium=rss&utm_campaign=x&fbclid=123&gclid=9&id=1",
			want:  "https://example.com/a?id=1",
		},
		{
			name:  "mc_ prefixed params dropped",
			input: "https://example.com/a?mc_eid=abc&mc_cid=def&id=2",
			want:  "https://example.com/a?id=2",
		},
		{
			name:  "ref and ga params dropped",
			input: "https://example.com/a?ref=twitter&_ga=1.2&id=3",
			want:  "https://example.com/a?id=3",
		},
		{
			name:  "schemeless input gains https",
			input: "example.com/a",
			want:  "https://example.com/a",
		},
		{
			name:  "whitespace trimmed",
			input: "  https://example.com/a  ",
			want:  "https://example.com/a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.input))
		})
	}
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	inputs := []string{
		"http://www.example.com/p/?utm_source=x&id=1",
		"https://example.com/",
		"https://example.com:8443/a?b=c",
		"example.com/path/",
		"not a url at all",
	}

	for _, input := range inputs {
		once := NormalizeURL(input)
		twice := NormalizeURL(once)
		assert.Equal(t, once, twice, "normalize should be idempotent for %q", input)
	}
}

func TestNormalizeURL_UnparseableFallsBack(t *testing.T) {
	got := NormalizeURL("  HTTP://%zz ")
	assert.Equal(t, "http://%zz", got)
}
