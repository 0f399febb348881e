package feedfetch

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	apperrors "lector/utils/errors"
)

// Hostnames that must never be fetched regardless of DNS resolution.
var blockedHostSuffixes = []string{
	".local",
	".internal",
	".localhost",
}

var blockedHosts = map[string]bool{
	"localhost":                true,
	"metadata.google.internal": true,
}

// validateTarget rejects URLs that could reach internal infrastructure.
// Literal IPs are checked directly; hostnames are resolved and every
// returned address must be public.
func validateTarget(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apperrors.NewValidationContextError(
			fmt.Sprintf("invalid feed URL: %v", err),
			"gateway", "feedfetch", "validate_target", nil)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return blockedTargetError(rawURL, "scheme must be http or https")
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return blockedTargetError(rawURL, "missing host")
	}

	if blockedHosts[host] {
		return blockedTargetError(rawURL, "blocked host")
	}
	for _, suffix := range blockedHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return blockedTargetError(rawURL, "blocked host suffix")
		}
	}

	if ip := net.ParseIP(host); ip != nil {
		if !isPublicAddress(ip) {
			return blockedTargetError(rawURL, "non-public address")
		}
		return nil
	}

	addrs, err := net.LookupIP(host)
	if err != nil {
		return apperrors.NewUpstreamContextError(
			fmt.Sprintf("DNS resolution failed for %s", host),
			"gateway", "feedfetch", "validate_target", err, nil)
	}

	for _, addr := range addrs {
		if !isPublicAddress(addr) {
			return blockedTargetError(rawURL, "resolves to non-public address")
		}
	}

	return nil
}

func isPublicAddress(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() || // covers 169.254.0.0/16 metadata range
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified())
}

func blockedTargetError(rawURL, reason string) error {
	return apperrors.NewValidationContextError(
		fmt.Sprintf("refusing to fetch %s: %s", rawURL, reason),
		"gateway", "feedfetch", "validate_target", map[string]interface{}{"reason": reason})
}
