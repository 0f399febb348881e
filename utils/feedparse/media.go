package feedparse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// entryMediaURL resolves the representative image for an entry, trying
// dedicated media markup first and embedded HTML last.
func entryMediaURL(item *gofeed.Item, sanitizedContent *string) *string {
	media := item.Extensions["media"]

	for _, group := range media["group"] {
		for _, thumb := range group.Children["thumbnail"] {
			if u := strings.TrimSpace(thumb.Attrs["url"]); u != "" {
				return &u
			}
		}
	}

	for _, content := range media["content"] {
		if isImageMedia(content.Attrs) {
			if u := strings.TrimSpace(content.Attrs["url"]); u != "" {
				return &u
			}
		}
	}

	for _, thumb := range media["thumbnail"] {
		if u := strings.TrimSpace(thumb.Attrs["url"]); u != "" {
			return &u
		}
	}

	if item.ITunesExt != nil {
		if u := strings.TrimSpace(item.ITunesExt.Image); u != "" {
			return &u
		}
	}

	for _, enclosure := range item.Enclosures {
		if enclosure != nil && strings.HasPrefix(enclosure.Type, "image/") {
			if u := strings.TrimSpace(enclosure.URL); u != "" {
				return &u
			}
		}
	}

	if item.Image != nil {
		if u := strings.TrimSpace(item.Image.URL); u != "" {
			return &u
		}
	}

	fragments := []string{item.Description, item.Content}
	if sanitizedContent != nil {
		fragments = append(fragments, *sanitizedContent)
	}
	for _, fragment := range fragments {
		if u := imageFromHTML(fragment); u != "" {
			return &u
		}
	}

	return nil
}

func isImageMedia(attrs map[string]string) bool {
	return strings.HasPrefix(attrs["type"], "image") || attrs["medium"] == "image"
}

func imageFromHTML(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	if src, ok := doc.Find("img[src]").First().Attr("src"); ok {
		if u := strings.TrimSpace(src); u != "" {
			return u
		}
	}

	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		if u := strings.TrimSpace(content); u != "" {
			return u
		}
	}

	return ""
}

// platformMetadata collects YouTube and podcast specifics into a
// free-form map; nil when the entry has neither.
func platformMetadata(item *gofeed.Item) map[string]interface{} {
	meta := map[string]interface{}{}

	if yt, ok := item.Extensions["yt"]; ok {
		if v := extensionValue(yt, "videoId"); v != "" {
			meta["youtube_video_id"] = v
		}
		if v := extensionValue(yt, "channelId"); v != "" {
			meta["youtube_channel_id"] = v
		}
	}

	for _, group := range item.Extensions["media"]["group"] {
		for _, content := range group.Children["content"] {
			if d := strings.TrimSpace(content.Attrs["duration"]); d != "" {
				meta["duration_seconds"] = d
			}
		}
		for _, community := range group.Children["community"] {
			for _, stats := range community.Children["statistics"] {
				if views := strings.TrimSpace(stats.Attrs["views"]); views != "" {
					meta["view_count"] = views
				}
			}
			for _, rating := range community.Children["starRating"] {
				if avg := strings.TrimSpace(rating.Attrs["average"]); avg != "" {
					meta["star_rating"] = avg
				}
			}
		}
	}

	for _, enclosure := range item.Enclosures {
		if enclosure != nil && strings.HasPrefix(enclosure.Type, "audio/") && enclosure.URL != "" {
			meta["audio_url"] = enclosure.URL
			meta["audio_type"] = enclosure.Type
			if enclosure.Length != "" && enclosure.Length != "0" {
				meta["audio_length"] = enclosure.Length
			}
			break
		}
	}

	if item.ITunesExt != nil {
		if d := strings.TrimSpace(item.ITunesExt.Duration); d != "" {
			meta["audio_duration"] = d
		}
	}

	if len(meta) == 0 {
		return nil
	}
	return meta
}

func extensionValue(namespace map[string][]ext.Extension, name string) string {
	for _, entry := range namespace[name] {
		if v := strings.TrimSpace(entry.Value); v != "" {
			return v
		}
	}
	return ""
}
