package util

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// RegisteredDomain returns the eTLD+1 for a raw URL, or the bare lower-cased
// hostname when the public suffix list has no answer (IPs, localhost).
func RegisteredDomain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return strings.ToLower(etld1)
}

// SameSite reports whether two URLs share a registered domain.
func SameSite(a, b string) bool {
	da, db := RegisteredDomain(a), RegisteredDomain(b)
	return da != "" && da == db
}
