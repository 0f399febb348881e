// Package opml parses, validates, and renders OPML subscription lists.
package opml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	// MaxDepth bounds outline nesting; deeper documents are rejected
	// outright rather than flattened.
	MaxDepth = 9

	// MaxOutlines bounds the total outline count per document.
	MaxOutlines = 10000
)

var (
	ErrNotOPML          = errors.New("document is not OPML")
	ErrNoOutlines       = errors.New("OPML body has no outlines")
	ErrTooDeep          = fmt.Errorf("outline nesting exceeds %d levels", MaxDepth)
	ErrTooManyOutlines  = fmt.Errorf("outline count exceeds %d", MaxOutlines)
	ErrDangerousContent = errors.New("OPML contains dangerous content")
	ErrBadEncoding      = errors.New("OPML is neither valid UTF-8 nor Windows-1252")
)

// Outline is one node of the subscription tree. Feed outlines carry
// XMLURL; folder outlines carry children.
type Outline struct {
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr,omitempty"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Children []Outline `xml:"outline,omitempty"`
}

// Name resolves the display name, preferring text over title.
func (o *Outline) Name() string {
	if name := strings.TrimSpace(o.Text); name != "" {
		return name
	}
	return strings.TrimSpace(o.Title)
}

// IsFeed reports whether the outline points at a feed rather than a
// grouping folder.
func (o *Outline) IsFeed() bool {
	return strings.TrimSpace(o.XMLURL) != ""
}

type head struct {
	Title       string `xml:"title"`
	DateCreated string `xml:"dateCreated"`
}

type body struct {
	Outlines []Outline `xml:"outline"`
}

type document struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    head     `xml:"head"`
	Body    body     `xml:"body"`
}

// Document is a parsed, validated OPML file.
type Document struct {
	Title    string
	Outlines []Outline
}

// dangerous markers rejected before any XML parsing happens; checked
// case-insensitively against the raw bytes.
var dangerousMarkers = []string{
	"<script",
	"<iframe",
	"<object",
	"<embed",
	"javascript:",
	"<!--",
}

// Parse decodes an OPML document. Input must be UTF-8 or Windows-1252;
// structure and content are validated before any outline is returned.
func Parse(raw []byte) (*Document, error) {
	decoded, err := decodeToUTF8(raw)
	if err != nil {
		return nil, err
	}

	if err := rejectDangerousContent(decoded); err != nil {
		return nil, err
	}

	lower := strings.ToLower(decoded)
	for _, required := range []string{"<opml", "</opml>", "<head", "<body"} {
		if !strings.Contains(lower, required) {
			return nil, ErrNotOPML
		}
	}
	if !strings.Contains(lower, "<outline") {
		return nil, ErrNoOutlines
	}

	var doc document
	decoder := xml.NewDecoder(strings.NewReader(decoded))
	decoder.Strict = false
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("malformed OPML: %w", err)
	}

	if len(doc.Body.Outlines) == 0 {
		return nil, ErrNoOutlines
	}

	count := 0
	if err := validateOutlines(doc.Body.Outlines, 1, &count); err != nil {
		return nil, err
	}

	return &Document{
		Title:    strings.TrimSpace(doc.Head.Title),
		Outlines: doc.Body.Outlines,
	}, nil
}

func decodeToUTF8(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", ErrBadEncoding
	}
	return string(decoded), nil
}

func rejectDangerousContent(content string) error {
	lower := strings.ToLower(content)
	for _, marker := range dangerousMarkers {
		if strings.Contains(lower, marker) {
			return ErrDangerousContent
		}
	}
	return nil
}

func validateOutlines(outlines []Outline, depth int, count *int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}

	for i := range outlines {
		*count++
		if *count > MaxOutlines {
			return ErrTooManyOutlines
		}
		if err := validateOutlines(outlines[i].Children, depth+1, count); err != nil {
			return err
		}
	}
	return nil
}

// ExportFolder groups feeds for rendering; a nil parent means top level.
type ExportFolder struct {
	Name     string
	Feeds    []ExportFeed
	Children []ExportFolder
}

type ExportFeed struct {
	Title   string
	FeedURL string
	SiteURL string
}

// Render produces an OPML 2.0 document for a user's subscription tree.
// Top-level feeds go in looseFeeds; foldered feeds nest under folders.
func Render(title string, looseFeeds []ExportFeed, folders []ExportFolder, now time.Time) ([]byte, error) {
	doc := document{
		Version: "2.0",
		Head: head{
			Title:       title,
			DateCreated: now.UTC().Format(time.RFC1123Z),
		},
	}

	for _, feed := range looseFeeds {
		doc.Body.Outlines = append(doc.Body.Outlines, feedOutline(feed))
	}
	for _, folder := range folders {
		doc.Body.Outlines = append(doc.Body.Outlines, folderOutline(folder))
	}

	rendered, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render OPML: %w", err)
	}

	return append([]byte(xml.Header), append(rendered, '\n')...), nil
}

func feedOutline(feed ExportFeed) Outline {
	return Outline{
		Text:    feed.Title,
		Title:   feed.Title,
		Type:    "rss",
		XMLURL:  feed.FeedURL,
		HTMLURL: feed.SiteURL,
	}
}

func folderOutline(folder ExportFolder) Outline {
	outline := Outline{
		Text:  folder.Name,
		Title: folder.Name,
	}
	for _, feed := range folder.Feeds {
		outline.Children = append(outline.Children, feedOutline(feed))
	}
	for _, child := range folder.Children {
		outline.Children = append(outline.Children, folderOutline(child))
	}
	return outline
}
