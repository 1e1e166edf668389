// Package normalize implements the shallow URL canonicalization used to decide
// whether a resolved final URL matches the expected target. It is deliberately
// not a full URL normalizer: no percent-decoding, no default-port stripping,
// no query reordering. Two URLs are "the same" here exactly when a human
// eyeballing a migration sheet would call them the same.
package normalize

import "strings"

// URL canonicalizes a URL string for equality comparison: trims surrounding
// whitespace, lower-cases the whole string and strips every trailing slash.
// Empty input stays empty.
func URL(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimRight(s, "/")
}

// Equal reports whether two URL strings are equal after normalization.
func Equal(a, b string) bool { return URL(a) == URL(b) }
