package model

// StatusKind classifies the outcome of one redirect check.
type StatusKind string

const (
	StatusOK               StatusKind = "ok"
	StatusWrongDestination StatusKind = "wrong_destination"
	StatusHTTPError        StatusKind = "http_error"
	StatusTransportError   StatusKind = "transport_error"
)

// RedirectPair is one row of input: a source URL and the target URL its
// redirect chain is expected to end at.
type RedirectPair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// CheckResult is the final record for a single pair. Exactly one is produced
// per RedirectPair and it is never mutated after the checker returns it.
type CheckResult struct {
	Source string     `json:"source"`
	Target string     `json:"target"`
	Kind   StatusKind `json:"status"`

	// FinalURL is the URL the chain resolved to. Empty only when Kind is
	// StatusTransportError.
	FinalURL string `json:"final_url,omitempty"`

	// Detail carries the human-readable specifics: the HTTP status code for
	// http_error, the actual destination for wrong_destination, the transport
	// error text for transport_error.
	Detail string `json:"detail,omitempty"`

	// StatusCode is the final HTTP status, 0 when no response was obtained.
	StatusCode int `json:"status_code"`

	// Chain lists the redirect hops traversed, source first.
	Chain []string `json:"redirect_chain,omitempty"`

	// CrossSite is set on wrong_destination results whose final URL sits on a
	// different registered domain than the expected target.
	CrossSite bool `json:"cross_site,omitempty"`

	DurationMs int64 `json:"duration_ms"`
}

// OK reports whether the pair redirected correctly.
func (r CheckResult) OK() bool { return r.Kind == StatusOK }

// Progress is one dispatcher progress event, emitted after each completed pair.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}
