package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"
)

// MaxRedirects caps how many hops a single request may follow before the
// client gives up on the chain.
const MaxRedirects = 10

// Config holds settings for the HTTP client.
type Config struct {
	Timeout   time.Duration
	Proxy     func(*http.Request) (*url.URL, error)
	Headers   http.Header
	UserAgent string
	Cookie    string
	Insecure  bool
}

// headerRoundTripper wraps a base RoundTripper to inject the configured
// user agent, headers and cookies into every outgoing request.
type headerRoundTripper struct {
	base      http.RoundTripper
	headers   http.Header
	userAgent string
	cookie    string
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if h.base == nil {
		h.base = http.DefaultTransport
	}

	// Clone so redirect-following retries never see mutated headers.
	r := req.Clone(req.Context())
	if h.userAgent != "" && r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", h.userAgent)
	}
	for k, vs := range h.headers {
		r.Header.Del(k)
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if h.cookie != "" {
		r.Header.Set("Cookie", h.cookie)
	}
	return h.base.RoundTrip(r)
}

// New returns a configured HTTP client that follows redirects up to
// MaxRedirects hops. The timeout bounds each whole request, chain included.
func New(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy:           cfg.Proxy,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.Insecure},
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: &headerRoundTripper{
			base:      transport,
			headers:   cfg.Headers,
			userAgent: cfg.UserAgent,
			cookie:    cfg.Cookie,
		},
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}
