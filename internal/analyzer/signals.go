package analyzer

import (
	"context"
	"time"
)

// Outcome tags a collector result. Every signal is exactly one of Found,
// Unavailable, or TimedOut; the aggregator switches exhaustively on this tag.
type Outcome string

const (
	// OutcomeFound means the collector reached the network and produced data.
	OutcomeFound Outcome = "found"
	// OutcomeUnavailable means the collector failed (DNS error, refused
	// connection, no TLS support, WHOIS failure). Carries a reason.
	OutcomeUnavailable Outcome = "unavailable"
	// OutcomeTimedOut means the collector exceeded its timeout budget.
	OutcomeTimedOut Outcome = "timed_out"
)

// HTTPFinding is the normalized data shape of a successful HTTP probe.
type HTTPFinding struct {
	StatusCode    int  `json:"status_code"`
	RedirectCount int  `json:"redirect_count"`
	UsesHTTPS     bool `json:"uses_https"`
}

// TLSFinding is the normalized data shape of a successful TLS handshake.
type TLSFinding struct {
	Issuer        string    `json:"issuer"`
	NotBefore     time.Time `json:"not_before"`
	NotAfter      time.Time `json:"not_after"`
	SelfSigned    bool      `json:"self_signed"`
	DomainMatches bool      `json:"domain_matches"`
	Expired       bool      `json:"expired"`
	FreeIssuer    bool      `json:"free_issuer"`
}

// WhoisFinding is the normalized data shape of a successful WHOIS lookup.
type WhoisFinding struct {
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	AgeDays          int        `json:"age_days"` // -1 when the registry hides the creation date
	Registrar        string     `json:"registrar,omitempty"`
	PrivacyProtected bool       `json:"privacy_protected"`
}

// HTTPSignal is the collected HTTP reachability signal.
type HTTPSignal struct {
	Outcome Outcome      `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
	Finding *HTTPFinding `json:"finding,omitempty"`
}

// TLSSignal is the collected TLS certificate signal.
type TLSSignal struct {
	Outcome Outcome     `json:"outcome"`
	Reason  string      `json:"reason,omitempty"`
	Finding *TLSFinding `json:"finding,omitempty"`
}

// WhoisSignal is the collected WHOIS registration signal.
type WhoisSignal struct {
	Outcome Outcome       `json:"outcome"`
	Reason  string        `json:"reason,omitempty"`
	Finding *WhoisFinding `json:"finding,omitempty"`
}

// Signals bundles the three independent network signals for aggregation.
type Signals struct {
	HTTP  HTTPSignal  `json:"http"`
	TLS   TLSSignal   `json:"tls"`
	Whois WhoisSignal `json:"whois"`
}

// The three capability interfaces below form the dependency boundary of the
// engine. Production adapters live in internal/collector; tests inject
// deterministic fakes. Implementations must honor ctx cancellation and must
// not panic past this boundary; any failure is returned as an error and
// downgraded to an Unavailable signal by the engine.

// HTTPCapability fetches the front page of a host and reports reachability.
type HTTPCapability interface {
	Fetch(ctx context.Context, host string) (*HTTPFinding, error)
}

// TLSCapability performs a TLS handshake on port 443 and inspects the
// presented certificate.
type TLSCapability interface {
	Handshake(ctx context.Context, host string) (*TLSFinding, error)
}

// WhoisCapability looks up registration data for a registrable domain.
type WhoisCapability interface {
	Lookup(ctx context.Context, domain string) (*WhoisFinding, error)
}
