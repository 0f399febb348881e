package security

import (
	"net"
	"net/http"
	"strings"
)

// IPResolver derives the client IP. Proxy headers are only honored when
// the immediate peer is inside the trusted proxy set.
type IPResolver struct {
	trusted []*net.IPNet
}

// NewIPResolver parses TRUSTED_PROXIES entries; bare IPs become /32 (or
// /128) networks. Unparseable entries are skipped.
func NewIPResolver(trustedProxies []string) *IPResolver {
	var nets []*net.IPNet

	for _, entry := range trustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if _, network, err := net.ParseCIDR(entry); err == nil {
			nets = append(nets, network)
			continue
		}

		if ip := net.ParseIP(entry); ip != nil {
			bits := 32
			if ip.To4() == nil {
				bits = 128
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
		}
	}

	return &IPResolver{trusted: nets}
}

// ClientIP returns the best-known client address for a request. The
// direct peer wins unless it is a trusted proxy, in which case the first
// public X-Forwarded-For hop is used, then X-Real-IP.
func (r *IPResolver) ClientIP(req *http.Request) string {
	peer := peerIP(req.RemoteAddr)

	if peer == nil || !r.isTrusted(peer) {
		if peer == nil {
			return req.RemoteAddr
		}
		return peer.String()
	}

	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		for _, hop := range strings.Split(forwarded, ",") {
			ip := net.ParseIP(strings.TrimSpace(hop))
			if ip != nil && isPublicIP(ip) {
				return ip.String()
			}
		}
	}

	if realIP := net.ParseIP(strings.TrimSpace(req.Header.Get("X-Real-IP"))); realIP != nil {
		return realIP.String()
	}

	return peer.String()
}

func (r *IPResolver) isTrusted(ip net.IP) bool {
	for _, network := range r.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func peerIP(remoteAddr string) net.IP {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	return net.ParseIP(host)
}

func isPublicIP(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified())
}
