package opml

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validOPML = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>My Feeds</title></head>
  <body>
    <outline text="Tech" title="Tech">
      <outline text="Go Blog" type="rss" xmlUrl="https://go.dev/blog/feed.atom" htmlUrl="https://go.dev/blog"/>
    </outline>
    <outline text="News" type="rss" xmlUrl="https://news.test/rss"/>
  </body>
</opml>`

func TestParse_ValidDocument(t *testing.T) {
	doc, err := Parse([]byte(validOPML))
	require.NoError(t, err)

	assert.Equal(t, "My Feeds", doc.Title)
	require.Len(t, doc.Outlines, 2)

	folder := doc.Outlines[0]
	assert.Equal(t, "Tech", folder.Name())
	assert.False(t, folder.IsFeed())
	require.Len(t, folder.Children, 1)
	assert.True(t, folder.Children[0].IsFeed())
	assert.Equal(t, "https://go.dev/blog/feed.atom", folder.Children[0].XMLURL)

	assert.True(t, doc.Outlines[1].IsFeed())
}

func TestParse_StructureValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"not opml", `<html><body>x</body></html>`, ErrNotOPML},
		{"missing head", `<opml version="2.0"><body><outline text="x"/></body></opml>`, ErrNotOPML},
		{"no outlines", `<opml version="2.0"><head/><body></body></opml>`, ErrNoOutlines},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.body))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_RejectsDangerousContent(t *testing.T) {
	template := `<opml version="2.0"><head/><body><outline text="%s" xmlUrl="%s"/></body></opml>`

	cases := []struct {
		name string
		doc  string
	}{
		{"script", fmt.Sprintf(template, "<script>x</script>", "https://a.test")},
		{"iframe", fmt.Sprintf(template, "<iframe>", "https://a.test")},
		{"object", fmt.Sprintf(template, "<object>", "https://a.test")},
		{"embed", fmt.Sprintf(template, "<embed>", "https://a.test")},
		{"javascript url", fmt.Sprintf(template, "x", "javascript:alert(1)")},
		{"html comment", `<opml version="2.0"><head/><body><!-- sneaky --><outline text="x"/></body></opml>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, ErrDangerousContent)
		})
	}
}

func TestParse_DepthLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<opml version="2.0"><head/><body>`)
	for i := 0; i <= MaxDepth; i++ {
		fmt.Fprintf(&b, `<outline text="level%d">`, i)
	}
	b.WriteString(`<outline text="leaf" xmlUrl="https://a.test/rss"/>`)
	for i := 0; i <= MaxDepth; i++ {
		b.WriteString(`</outline>`)
	}
	b.WriteString(`</body></opml>`)

	_, err := Parse([]byte(b.String()))
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestParse_OutlineCountLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<opml version="2.0"><head/><body>`)
	for i := 0; i <= MaxOutlines; i++ {
		fmt.Fprintf(&b, `<outline text="f%d" xmlUrl="https://a.test/%d"/>`, i, i)
	}
	b.WriteString(`</body></opml>`)

	_, err := Parse([]byte(b.String()))
	assert.ErrorIs(t, err, ErrTooManyOutlines)
}

func TestParse_Windows1252(t *testing.T) {
	// "Caf\xe9" is Windows-1252 for Café and invalid UTF-8.
	doc := []byte(`<opml version="2.0"><head><title>Caf` + "\xe9" +
		`</title></head><body><outline text="x" xmlUrl="https://a.test/rss"/></body></opml>`)

	parsed, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "Café", parsed.Title)
}

func TestRender_RoundTrip(t *testing.T) {
	rendered, err := Render("Export",
		[]ExportFeed{{Title: "Loose", FeedURL: "https://loose.test/rss", SiteURL: "https://loose.test"}},
		[]ExportFolder{{
			Name:  "Tech",
			Feeds: []ExportFeed{{Title: "Go Blog", FeedURL: "https://go.dev/blog/feed.atom"}},
			Children: []ExportFolder{{
				Name:  "Databases",
				Feeds: []ExportFeed{{Title: "PG", FeedURL: "https://pg.test/rss"}},
			}},
		}},
		time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	doc, err := Parse(rendered)
	require.NoError(t, err)

	assert.Equal(t, "Export", doc.Title)
	require.Len(t, doc.Outlines, 2)
	assert.Equal(t, "Loose", doc.Outlines[0].Name())
	assert.True(t, doc.Outlines[0].IsFeed())

	tech := doc.Outlines[1]
	assert.Equal(t, "Tech", tech.Name())
	require.Len(t, tech.Children, 2)
	assert.Equal(t, "https://go.dev/blog/feed.atom", tech.Children[0].XMLURL)
	assert.Equal(t, "Databases", tech.Children[1].Name())
	require.Len(t, tech.Children[1].Children, 1)
}
