// Package feedparse turns fetched feed documents into feed metadata and
// bounded entry records ready for ingestion.
package feedparse

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/text/language"

	"lector/domain"
	"lector/utils/htmlsanitize"
)

const (
	// Hard cap on entries per refresh to bound fan-out work downstream.
	maxEntries = 50

	maxDescriptionChars = 500

	// Bound on repeated entity decoding of titles. Two rounds undo
	// double-encoding; the third detects a fixed point.
	maxEntityDecodeRounds = 3
)

// ParseError carries the failure classification alongside the cause.
type ParseError struct {
	Kind  domain.ParseErrorKind
	cause error
}

func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return string(e.Kind)
}

func (e *ParseError) Unwrap() error { return e.cause }

func newParseError(kind domain.ParseErrorKind, cause error) *ParseError {
	return &ParseError{Kind: kind, cause: cause}
}

type Parser struct {
	sanitizer *htmlsanitize.Sanitizer
	logger    *slog.Logger
}

func New(sanitizer *htmlsanitize.Sanitizer, logger *slog.Logger) *Parser {
	return &Parser{
		sanitizer: sanitizer,
		logger:    logger.With("component", "feed_parser"),
	}
}

// Parse decodes a fetched feed document. Character encodings declared in
// the XML prolog are handled by the underlying parser.
func (p *Parser) Parse(body []byte) (*domain.FeedMeta, []domain.EntryRecord, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil, newParseError(domain.ParseErrNoFeedData, nil)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, nil, newParseError(domain.ParseErrParsing, err)
	}
	if feed == nil {
		return nil, nil, newParseError(domain.ParseErrNoFeedData, nil)
	}
	if len(feed.Items) == 0 {
		return nil, nil, newParseError(domain.ParseErrNoEntries, nil)
	}

	meta := p.feedMeta(feed)

	items := feed.Items
	if len(items) > maxEntries {
		p.logger.Debug("truncating feed entries",
			"feed_title", meta.Title, "total", len(items), "cap", maxEntries)
		items = items[:maxEntries]
	}

	entries := make([]domain.EntryRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, p.entryRecord(item, meta.FeedType))
	}

	return meta, entries, nil
}

func (p *Parser) feedMeta(feed *gofeed.Feed) *domain.FeedMeta {
	meta := &domain.FeedMeta{
		Title:    decodeEntities(strings.TrimSpace(feed.Title)),
		FeedType: classifyFeedType(feed),
		Language: NormalizeLanguage(feed.Language),
	}

	if desc := truncateRunes(p.sanitizer.PlainText(feed.Description), maxDescriptionChars); desc != "" {
		meta.Description = &desc
	}

	if website := strings.TrimSpace(feed.Link); website != "" {
		meta.Website = &website
	}

	return meta
}

func (p *Parser) entryRecord(item *gofeed.Item, feedType domain.FeedType) domain.EntryRecord {
	record := domain.EntryRecord{
		Title:       decodeEntities(strings.TrimSpace(item.Title)),
		URL:         strings.TrimSpace(item.Link),
		Summary:     p.sanitizer.PlainText(item.Description),
		Categories:  entryCategories(item),
		Author:      entryAuthor(item),
		PublishedAt: entryPublishedAt(item),
	}

	rawContent, source := entryContent(item, feedType)
	if rawContent != "" {
		if sanitized := p.sanitizer.Sanitize(rawContent); sanitized != "" {
			record.Content = &sanitized
			record.ContentSource = source
		}
	}

	record.MediaURL = entryMediaURL(item, record.Content)
	record.PlatformMetadata = platformMetadata(item)

	return record
}

// entryContent selects the body from dedicated content tags only, in
// priority order. Summaries are never promoted to content.
func entryContent(item *gofeed.Item, feedType domain.FeedType) (string, domain.ContentSource) {
	if media, ok := item.Extensions["media"]; ok {
		for _, desc := range media["description"] {
			if value := strings.TrimSpace(desc.Value); value != "" {
				return value, domain.ContentSourceMediaDescription
			}
		}
	}

	if content := strings.TrimSpace(item.Content); content != "" {
		if feedType == domain.FeedTypeAtom {
			return content, domain.ContentSourceAtomContent
		}
		return content, domain.ContentSourceContentEncoded
	}

	return "", domain.ContentSourceNone
}

// entryAuthor joins author names with commas. Bare email addresses are
// not usable as display names and are skipped; Dublin Core creators are
// the fallback.
func entryAuthor(item *gofeed.Item) *string {
	var names []string
	seen := map[string]bool{}

	appendName := func(raw string) {
		name := strings.TrimSpace(raw)
		if name == "" || looksLikeEmail(name) {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		names = append(names, name)
	}

	for _, person := range item.Authors {
		if person != nil {
			appendName(person.Name)
		}
	}
	if item.Author != nil {
		appendName(item.Author.Name)
	}

	if len(names) == 0 && item.DublinCoreExt != nil {
		for _, creator := range item.DublinCoreExt.Creator {
			appendName(creator)
		}
	}

	if len(names) == 0 {
		return nil
	}

	joined := strings.Join(names, ", ")
	return &joined
}

// entryCategories merges native categories with Dublin Core subjects,
// deduplicating while preserving first occurrence.
func entryCategories(item *gofeed.Item) []string {
	var merged []string
	seen := map[string]bool{}

	appendCategory := func(raw string) {
		category := strings.TrimSpace(raw)
		if category == "" {
			return
		}
		key := strings.ToLower(category)
		if seen[key] {
			return
		}
		seen[key] = true
		merged = append(merged, category)
	}

	for _, category := range item.Categories {
		appendCategory(category)
	}

	if item.DublinCoreExt != nil {
		for _, subject := range item.DublinCoreExt.Subject {
			appendCategory(subject)
		}
	}

	return merged
}

func entryPublishedAt(item *gofeed.Item) *time.Time {
	for _, parsed := range []*time.Time{item.PublishedParsed, item.UpdatedParsed} {
		if parsed != nil {
			utc := parsed.UTC()
			return &utc
		}
	}

	candidates := []string{item.Published, item.Updated}
	if item.DublinCoreExt != nil {
		candidates = append(candidates, item.DublinCoreExt.Date...)
	}

	for _, raw := range candidates {
		if parsed := parseDateString(raw); parsed != nil {
			return parsed
		}
	}

	return nil
}

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateString(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	return nil
}

func classifyFeedType(feed *gofeed.Feed) domain.FeedType {
	switch feed.FeedType {
	case "atom":
		return domain.FeedTypeAtom
	case "rss":
		// RSS 1.0 is the RDF branch of the family.
		if feed.FeedVersion == "1.0" {
			return domain.FeedTypeRDF
		}
	}
	return domain.FeedTypeRSS
}

// decodeEntities unescapes HTML entities repeatedly up to a fixed bound,
// so double-encoded titles ("&amp;amp;") come out clean without risking
// an unbounded loop.
func decodeEntities(s string) string {
	for i := 0; i < maxEntityDecodeRounds; i++ {
		decoded := html.UnescapeString(s)
		if decoded == s {
			return s
		}
		s = decoded
	}
	return s
}

var languageShape = regexp.MustCompile(`^([A-Za-z]{2,3})(?:[-_]([A-Za-z]{2}))?$`)

// NormalizeLanguage reduces a declared feed language to `xx` or `xx-YY`.
// Only the shape is validated; unknown but well-formed codes pass through.
func NormalizeLanguage(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	// Declarations often carry extra subtags ("en-US-posix") or odd
	// casing; keep only the primary and region parts.
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '-' || r == '_' })
	candidate := parts[0]
	if len(parts) > 1 && len(parts[1]) == 2 {
		candidate += "-" + parts[1]
	}

	match := languageShape.FindStringSubmatch(candidate)
	if match == nil {
		return nil
	}

	normalized := strings.ToLower(match[1])
	if match[2] != "" {
		normalized += "-" + strings.ToUpper(match[2])
	}

	// Canonicalize known codes ("iw" becomes "he"); unknown but
	// well-formed codes keep their shape-normalized form.
	if tag, err := language.Parse(normalized); err == nil {
		if base, conf := tag.Base(); conf >= language.High {
			canonical := base.String()
			if region, conf := tag.Region(); conf == language.Exact {
				canonical += "-" + region.String()
			}
			normalized = canonical
		}
	}

	return &normalized
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit]))
}

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func looksLikeEmail(s string) bool {
	return emailShape.MatchString(s)
}
