package orchestrator

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeDomain returns a canonical host for a user-supplied domain string.
//
// The normalization rules keep scan targets deduplicatable and unambiguous:
//   - Accept a bare host or a full URL; a URL is reduced to its hostname
//   - Lower-case and strip surrounding whitespace and a trailing dot
//   - Drop any port
//   - Reject IP addresses, hosts without a registrable suffix, and anything
//     the public suffix list cannot anchor (e.g. "localhost", bare TLDs)
//
// Subdomains are kept as given; scanning "api.example.com" inspects that host,
// not the apex.
func NormalizeDomain(raw string) (string, error) {
	host := strings.ToLower(strings.TrimSpace(raw))
	if host == "" {
		return "", fmt.Errorf("domain is empty")
	}

	// reduce URLs to their hostname
	if strings.Contains(host, "://") {
		u, err := url.Parse(host)
		if err != nil {
			return "", fmt.Errorf("could not parse URL: %w", err)
		}
		host = u.Hostname()
	} else if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", fmt.Errorf("domain is empty")
	}
	if net.ParseIP(host) != nil {
		return "", fmt.Errorf("IP addresses cannot be scanned, provide a domain")
	}

	if _, err := publicsuffix.EffectiveTLDPlusOne(host); err != nil {
		return "", fmt.Errorf("not a registrable domain: %w", err)
	}

	return host, nil
}
