// Package htmlsanitize cleans article HTML into a safe subtree and a
// plain-text projection.
package htmlsanitize

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Embed providers whose iframes survive sanitization. Matching includes
// subdomains (player.vimeo.com, www.youtube.com).
var trustedEmbedHosts = []string{
	"youtube.com",
	"youtube-nocookie.com",
	"youtu.be",
	"vimeo.com",
	"spotify.com",
	"music.apple.com",
	"soundcloud.com",
}

var dangerousStyleMarkers = []string{"javascript", "expression", "behavior", "@import"}

var dangerousSchemes = []string{"javascript:", "data:", "vbscript:"}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "hr", "a", "img", "iframe", "figure", "figcaption",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "dl", "dt", "dd",
		"blockquote", "pre", "code",
		"em", "strong", "b", "i", "u", "s", "sub", "sup", "small",
		"span", "div",
		"table", "thead", "tbody", "tr", "th", "td", "caption",
	)

	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	p.AllowAttrs("src", "width", "height", "allowfullscreen", "frameborder", "title").OnElements("iframe")
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")

	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{policy: p}
}

// Sanitize returns the safe HTML subtree for raw article markup. The
// function is a closure: sanitizing its own output yields the same bytes.
func (s *Sanitizer) Sanitize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return strings.TrimSpace(s.policy.Sanitize(input))
	}

	s.prePass(doc)

	// Pull <pre> blocks aside so the allowlist pass cannot disturb their
	// whitespace, then splice them back over the placeholders.
	nonce := randomNonce()
	var preBlocks []string
	doc.Find("pre").Each(func(i int, sel *goquery.Selection) {
		preBlocks = append(preBlocks, renderPre(sel))
		sel.ReplaceWithHtml(prePlaceholder(nonce, i))
	})

	body, err := doc.Find("body").Html()
	if err != nil {
		body = input
	}

	cleaned := s.policy.Sanitize(body)

	for i, block := range preBlocks {
		cleaned = strings.Replace(cleaned, prePlaceholder(nonce, i), block, 1)
	}

	return strings.TrimSpace(cleaned)
}

// PlainText projects sanitized HTML onto whitespace-normalized text.
// Spaces are inserted at tag boundaries first so that adjacent inline
// runs ("<b>Go</b>lang") do not concatenate ("Go lang").
func (s *Sanitizer) PlainText(input string) string {
	safe := s.Sanitize(input)
	if safe == "" {
		return ""
	}

	spaced := tagPattern.ReplaceAllString(safe, " $0 ")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(spaced))
	if err != nil {
		return strings.Join(strings.Fields(tagPattern.ReplaceAllString(safe, " ")), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}

// prePass removes what the allowlist cannot express: host-conditional
// iframes, dangerous inline styles, and scripting schemes in URLs.
func (s *Sanitizer) prePass(doc *goquery.Document) {
	doc.Find("script, style, noscript, object, embed, form, input, button").Remove()

	doc.Find("iframe").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if !isTrustedEmbed(src) {
			sel.Remove()
		}
	})

	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		style, _ := sel.Attr("style")
		if isDangerousStyle(style) {
			sel.RemoveAttr("style")
		}
	})

	for _, attr := range []string{"href", "src"} {
		doc.Find("[" + attr + "]").Each(func(_ int, sel *goquery.Selection) {
			value, _ := sel.Attr(attr)
			if hasDangerousScheme(value) {
				sel.SetAttr(attr, "")
			}
		})
	}
}

func isTrustedEmbed(src string) bool {
	host := embedHost(src)
	if host == "" {
		return false
	}

	for _, trusted := range trustedEmbedHosts {
		if host == trusted || strings.HasSuffix(host, "."+trusted) {
			return true
		}
	}
	return false
}

func embedHost(src string) string {
	src = strings.TrimSpace(src)
	if hasDangerousScheme(src) {
		return ""
	}

	for _, prefix := range []string{"https://", "http://", "//"} {
		if strings.HasPrefix(strings.ToLower(src), prefix) {
			src = src[len(prefix):]
			if end := strings.IndexAny(src, "/?#"); end >= 0 {
				src = src[:end]
			}
			if at := strings.LastIndex(src, "@"); at >= 0 {
				// userinfo tricks like https://youtube.com@evil.test/
				src = src[at+1:]
			}
			if colon := strings.Index(src, ":"); colon >= 0 {
				src = src[:colon]
			}
			return strings.ToLower(src)
		}
	}
	return ""
}

func isDangerousStyle(style string) bool {
	lower := strings.ToLower(style)
	for _, marker := range dangerousStyleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func hasDangerousScheme(value string) bool {
	compact := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, value)
	lower := strings.ToLower(compact)

	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// renderPre reduces a <pre> block to its escaped text content, which is
// exactly the whitespace-sensitive part worth keeping.
func renderPre(sel *goquery.Selection) string {
	return "<pre>" + html.EscapeString(sel.Text()) + "</pre>"
}

func prePlaceholder(nonce string, index int) string {
	return fmt.Sprintf("[[pre:%s:%d]]", nonce, index)
}

func randomNonce() string {
	raw := make([]byte, 8)
	if _, err := rand.Read(raw); err != nil {
		return "fallback"
	}
	return hex.EncodeToString(raw)
}
