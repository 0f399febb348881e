package feedparse

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lector/domain"
	"lector/utils/htmlsanitize"
)

func newTestParser() *Parser {
	return New(htmlsanitize.New(), slog.Default())
}

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
     xmlns:content="http://purl.org/rss/1.0/modules/content/"
     xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Example &amp;amp; Sons</title>
    <description>A feed about &lt;b&gt;things&lt;/b&gt;</description>
    <link>https://example.com</link>
    <language>EN_us</language>
    <item>
      <title>First &amp;amp; Best</title>
      <link>https://example.com/posts/1</link>
      <description>&lt;p&gt;A &lt;b&gt;short&lt;/b&gt; summary&lt;/p&gt;</description>
      <content:encoded>&lt;p&gt;Full &lt;em&gt;body&lt;/em&gt;&lt;/p&gt;&lt;script&gt;x()&lt;/script&gt;</content:encoded>
      <category>Go</category>
      <category>go</category>
      <dc:creator>Jane Doe</dc:creator>
      <dc:subject>Programming</dc:subject>
      <pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
    </item>
  </channel>
</rss>`

func TestParse_RSSMetadataAndEntry(t *testing.T) {
	p := newTestParser()

	meta, entries, err := p.Parse([]byte(rssFixture))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "Example & Sons", meta.Title)
	assert.Equal(t, domain.FeedTypeRSS, meta.FeedType)
	require.NotNil(t, meta.Language)
	assert.Equal(t, "en-US", *meta.Language)
	require.NotNil(t, meta.Website)
	assert.Equal(t, "https://example.com", *meta.Website)
	require.NotNil(t, meta.Description)
	assert.Equal(t, "A feed about things", *meta.Description)

	entry := entries[0]
	assert.Equal(t, "First & Best", entry.Title)
	assert.Equal(t, "https://example.com/posts/1", entry.URL)
	assert.Equal(t, "A short summary", entry.Summary)

	require.NotNil(t, entry.Content)
	assert.Contains(t, *entry.Content, "<em>body</em>")
	assert.NotContains(t, *entry.Content, "<script")
	assert.Equal(t, domain.ContentSourceContentEncoded, entry.ContentSource)

	require.NotNil(t, entry.Author)
	assert.Equal(t, "Jane Doe", *entry.Author)

	// Categories dedupe case-insensitively and merge Dublin Core
	assert.Equal(t, []string{"Go", "Programming"}, entry.Categories)

	require.NotNil(t, entry.PublishedAt)
	assert.Equal(t, time.UTC, entry.PublishedAt.Location())
	assert.Equal(t, 22, entry.PublishedAt.Hour())
}

func TestParse_AtomContentSource(t *testing.T) {
	p := newTestParser()

	atom := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <link href="https://example.org"/>
  <entry>
    <title>Entry</title>
    <link href="https://example.org/e/1"/>
    <content type="html">&lt;p&gt;atom body&lt;/p&gt;</content>
    <updated>2024-03-01T10:00:00Z</updated>
  </entry>
</feed>`

	meta, entries, err := p.Parse([]byte(atom))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, domain.FeedTypeAtom, meta.FeedType)
	require.NotNil(t, entries[0].Content)
	assert.Equal(t, domain.ContentSourceAtomContent, entries[0].ContentSource)
}

func TestParse_ContentNeverFabricatedFromSummary(t *testing.T) {
	p := newTestParser()

	rss := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>t</title>
  <item><title>e</title><link>https://x.test/1</link>
    <description>only a summary here</description></item>
</channel></rss>`

	_, entries, err := p.Parse([]byte(rss))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Nil(t, entries[0].Content)
	assert.Equal(t, domain.ContentSourceNone, entries[0].ContentSource)
	assert.Equal(t, "only a summary here", entries[0].Summary)
}

func TestParse_EntryCap(t *testing.T) {
	p := newTestParser()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>big</title>`)
	for i := 0; i < 80; i++ {
		fmt.Fprintf(&b, `<item><title>e%d</title><link>https://x.test/%d</link></item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)

	_, entries, err := p.Parse([]byte(b.String()))
	require.NoError(t, err)

	assert.Len(t, entries, 50)
	assert.Equal(t, "e0", entries[0].Title)
	assert.Equal(t, "e49", entries[49].Title)
}

func TestParse_FailureClassification(t *testing.T) {
	p := newTestParser()

	cases := []struct {
		name string
		body string
		kind domain.ParseErrorKind
	}{
		{"empty body", "", domain.ParseErrNoFeedData},
		{"whitespace body", "   \n ", domain.ParseErrNoFeedData},
		{"not a feed", "<html><body>nope</body></html>", domain.ParseErrParsing},
		{"no entries", `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`, domain.ParseErrNoEntries},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := p.Parse([]byte(tc.body))
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.kind, parseErr.Kind)
		})
	}
}

func TestParse_MediaURLFromEnclosure(t *testing.T) {
	p := newTestParser()

	rss := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>t</title>
  <item><title>e</title><link>https://x.test/1</link>
    <enclosure url="https://x.test/cover.jpg" length="1000" type="image/jpeg"/>
  </item>
</channel></rss>`

	_, entries, err := p.Parse([]byte(rss))
	require.NoError(t, err)
	require.NotNil(t, entries[0].MediaURL)
	assert.Equal(t, "https://x.test/cover.jpg", *entries[0].MediaURL)
}

func TestParse_MediaURLFromEmbeddedImage(t *testing.T) {
	p := newTestParser()

	rss := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>t</title>
  <item><title>e</title><link>https://x.test/1</link>
    <description>&lt;p&gt;look: &lt;img src="https://x.test/inline.png"&gt;&lt;/p&gt;</description>
  </item>
</channel></rss>`

	_, entries, err := p.Parse([]byte(rss))
	require.NoError(t, err)
	require.NotNil(t, entries[0].MediaURL)
	assert.Equal(t, "https://x.test/inline.png", *entries[0].MediaURL)
}

func TestParse_YouTubeMetadata(t *testing.T) {
	p := newTestParser()

	atom := `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom"
      xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/">
  <title>Channel</title>
  <entry>
    <title>Video</title>
    <link href="https://www.youtube.com/watch?v=abc123"/>
    <yt:videoId>abc123</yt:videoId>
    <yt:channelId>UCxyz</yt:channelId>
    <media:group>
      <media:thumbnail url="https://i.ytimg.com/vi/abc123/hq.jpg"/>
      <media:community>
        <media:statistics views="12345"/>
        <media:starRating average="4.8"/>
      </media:community>
    </media:group>
  </entry>
</feed>`

	_, entries, err := p.Parse([]byte(atom))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	require.NotNil(t, entry.MediaURL)
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hq.jpg", *entry.MediaURL)

	require.NotNil(t, entry.PlatformMetadata)
	assert.Equal(t, "abc123", entry.PlatformMetadata["youtube_video_id"])
	assert.Equal(t, "UCxyz", entry.PlatformMetadata["youtube_channel_id"])
	assert.Equal(t, "12345", entry.PlatformMetadata["view_count"])
	assert.Equal(t, "4.8", entry.PlatformMetadata["star_rating"])
}

func TestParse_PodcastEnclosure(t *testing.T) {
	p := newTestParser()

	rss := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Pod</title>
  <item><title>Episode 1</title><link>https://pod.test/1</link>
    <enclosure url="https://pod.test/ep1.mp3" length="123456" type="audio/mpeg"/>
  </item>
</channel></rss>`

	_, entries, err := p.Parse([]byte(rss))
	require.NoError(t, err)

	meta := entries[0].PlatformMetadata
	require.NotNil(t, meta)
	assert.Equal(t, "https://pod.test/ep1.mp3", meta["audio_url"])
	assert.Equal(t, "audio/mpeg", meta["audio_type"])
	assert.Equal(t, "123456", meta["audio_length"])
}

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"en", "en", true},
		{"EN", "en", true},
		{"en-US", "en-US", true},
		{"en_us", "en-US", true},
		{"en-US-posix", "en-US", true},
		{"ja", "ja", true},
		{"", "", false},
		{"english language", "", false},
		{"x", "", false},
	}

	for _, tc := range cases {
		got := NormalizeLanguage(tc.raw)
		if !tc.ok {
			assert.Nil(t, got, "raw %q", tc.raw)
			continue
		}
		require.NotNil(t, got, "raw %q", tc.raw)
		assert.Equal(t, tc.want, *got, "raw %q", tc.raw)
	}
}

func TestDecodeEntities_Bounded(t *testing.T) {
	assert.Equal(t, "A & B", decodeEntities("A &amp;amp; B"))
	assert.Equal(t, "A & B", decodeEntities("A &amp; B"))
	assert.Equal(t, "plain", decodeEntities("plain"))
}
