// Package urlutil canonicalizes URLs so articles dedupe across feeds and
// discovery requests regardless of tracking noise or formatting variations.
package urlutil

import (
	"net/url"
	"strings"
)

// Tracking parameters removed outright. Prefix families (utm_*, mc_*) are
// handled separately.
var trackingParams = map[string]struct{}{
	"fbclid":  {},
	"gclid":   {},
	"msclkid": {},
	"igshid":  {},
	"_ga":     {},
	"_gid":    {},
	"ref":     {},
}

var trackingPrefixes = []string{"utm_", "mc_"}

// NormalizeURL produces the canonical form of a URL:
//
//   - scheme forced to https, host lowercased, leading "www." stripped
//   - default ports dropped
//   - fragment dropped
//   - trailing slash dropped except for the root path
//   - tracking parameters and empty-valued parameters removed
//
// A URL that cannot be parsed degrades to its trimmed, lowercased input so
// callers always receive a stable key. NormalizeURL is idempotent.
func NormalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)

	parsedURL, err := url.Parse(trimmed)
	if err != nil || parsedURL.Host == "" {
		// Retry with a scheme; bare hosts like "example.com/a" parse as paths
		if err == nil && !strings.Contains(trimmed, "://") {
			if reparsed, rerr := url.Parse("https://" + trimmed); rerr == nil && reparsed.Host != "" {
				parsedURL = reparsed
			} else {
				return strings.ToLower(trimmed)
			}
		} else {
			return strings.ToLower(trimmed)
		}
	}

	parsedURL.Scheme = "https"

	host := strings.ToLower(parsedURL.Hostname())
	host = strings.TrimPrefix(host, "www.")

	// Drop default ports; anything else is kept
	port := parsedURL.Port()
	if port == "" || port == "80" || port == "443" {
		parsedURL.Host = host
	} else {
		parsedURL.Host = host + ":" + port
	}

	query := parsedURL.Query()
	for param := range query {
		if shouldDropParam(param, query.Get(param)) {
			query.Del(param)
		}
	}
	parsedURL.RawQuery = query.Encode()

	parsedURL.Fragment = ""

	if parsedURL.Path != "/" && strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path = strings.TrimRight(parsedURL.Path, "/")
	}

	return parsedURL.String()
}

func shouldDropParam(name, value string) bool {
	if value == "" {
		return true
	}

	lower := strings.ToLower(name)
	if _, tracked := trackingParams[lower]; tracked {
		return true
	}

	for _, prefix := range trackingPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	return false
}
