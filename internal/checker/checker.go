// Package checker verifies a single (source, target) redirect pair.
//
// The protocol mirrors how migration audits are run by hand: HEAD the source
// with redirects followed, fall back to GET when the server mishandles HEAD,
// then compare where the chain landed against the expected target.
package checker

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/oussamac10/redirect-checker/internal/htmlscan"
	"github.com/oussamac10/redirect-checker/internal/httpclient"
	"github.com/oussamac10/redirect-checker/internal/model"
	"github.com/oussamac10/redirect-checker/internal/normalize"
	"github.com/oussamac10/redirect-checker/internal/util"
)

const (
	maxBodyScan = 512 * 1024
	maxMetaHops = 3
)

// FetchOutcome is the transient result of one HTTP attempt. It is consumed
// immediately by classification and never retained.
type FetchOutcome struct {
	FinalURL string
	Status   int
	Chain    []string
	Err      error
}

// Checker runs the HEAD→GET check protocol for one pair at a time. A single
// Checker is safe for concurrent use by multiple workers.
type Checker struct {
	Client *http.Client

	// FollowMetaRefresh makes fallback GETs chase <meta http-equiv="refresh">
	// redirects in HTML bodies, up to maxMetaHops client-side hops.
	FollowMetaRefresh bool
}

// New creates a Checker on top of a configured client.
func New(c *http.Client) *Checker { return &Checker{Client: c} }

// Check performs the fetch protocol for one pair and classifies the outcome.
// Every failure mode becomes data; Check never returns an error.
func (c *Checker) Check(ctx context.Context, pair model.RedirectPair) model.CheckResult {
	start := time.Now()

	out := c.fetch(ctx, http.MethodHead, pair.Source)
	// Some servers reject HEAD but serve GET correctly, and a transport
	// failure on HEAD may still succeed over GET. Either way the GET outcome
	// replaces the HEAD outcome entirely.
	if out.Err != nil || out.Status >= 400 {
		out = c.fetch(ctx, http.MethodGet, pair.Source)
	}

	res := classify(pair, out)
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

// fetch issues one request with redirect following and records the hops
// traversed. With meta-refresh following enabled, a GET that lands on an HTML
// page continues through declarative client-side redirects.
func (c *Checker) fetch(ctx context.Context, method, rawURL string) FetchOutcome {
	out := FetchOutcome{Chain: []string{rawURL}}

	// Shallow copy so each request gets its own chain-recording hook while
	// sharing the configured transport.
	client := *c.Client
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= httpclient.MaxRedirects {
			return fmt.Errorf("stopped after %d redirects", httpclient.MaxRedirects)
		}
		out.Chain = append(out.Chain, req.URL.String())
		return nil
	}

	current := rawURL
	for hop := 0; ; hop++ {
		req, err := http.NewRequestWithContext(ctx, method, current, nil)
		if err != nil {
			out.Err = err
			return out
		}
		resp, err := client.Do(req)
		if err != nil {
			out.Err = err
			return out
		}

		out.FinalURL = resp.Request.URL.String()
		out.Status = resp.StatusCode

		if c.FollowMetaRefresh && method == http.MethodGet && hop < maxMetaHops &&
			resp.StatusCode < 400 && htmlscan.IsHTML(resp.Header.Get("Content-Type")) {
			next, ok := htmlscan.ReadMetaRefresh(resp.Body, maxBodyScan, resp.Request.URL)
			_ = resp.Body.Close()
			if ok {
				current = next.String()
				out.Chain = append(out.Chain, current)
				continue
			}
			return out
		}

		_ = resp.Body.Close()
		return out
	}
}

func classify(pair model.RedirectPair, out FetchOutcome) model.CheckResult {
	res := model.CheckResult{Source: pair.Source, Target: pair.Target}

	if out.Err != nil {
		res.Kind = model.StatusTransportError
		res.Detail = out.Err.Error()
		return res
	}

	res.FinalURL = out.FinalURL
	res.StatusCode = out.Status
	if len(out.Chain) > 1 {
		res.Chain = out.Chain
	}

	switch {
	case out.Status >= 400:
		res.Kind = model.StatusHTTPError
		res.Detail = strconv.Itoa(out.Status)
	case !normalize.Equal(out.FinalURL, pair.Target):
		res.Kind = model.StatusWrongDestination
		res.Detail = out.FinalURL
		res.CrossSite = !util.SameSite(out.FinalURL, pair.Target)
	default:
		res.Kind = model.StatusOK
	}
	return res
}
