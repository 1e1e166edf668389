package htmlscan

import (
	"io"
	"net/url"
	"regexp"
	"strings"
)

var metaRefreshRe = regexp.MustCompile(`(?i)<meta[^>]*http-equiv\s*=\s*["']refresh["'][^>]*content\s*=\s*["']\d+\s*;\s*url=([^"'>]+)`)

// IsHTML checks if a content-type indicates an HTML body worth scanning.
func IsHTML(ct string) bool {
	return strings.Contains(ct, "text/html")
}

// MetaRefresh inspects an HTML body for a meta-refresh redirect and returns
// the destination resolved against base.
func MetaRefresh(body []byte, base *url.URL) (*url.URL, bool) {
	m := metaRefreshRe.FindSubmatch(body)
	if m == nil {
		return nil, false
	}
	u, err := url.Parse(strings.TrimSpace(string(m[1])))
	if err != nil {
		return nil, false
	}
	return base.ResolveReference(u), true
}

// ReadMetaRefresh reads from r up to limit bytes and performs MetaRefresh.
func ReadMetaRefresh(r io.Reader, limit int64, base *url.URL) (*url.URL, bool) {
	buf := make([]byte, limit)
	n, _ := io.ReadFull(io.LimitReader(r, limit), buf)
	return MetaRefresh(buf[:n], base)
}
