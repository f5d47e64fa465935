// Package dnsname models a validated, normalized domain name.
//
// A Domain is constructed once via Parse and never mutated afterwards. All
// downstream analysis (lexical features, brand matching, signal collection)
// consumes the same normalized view, so "Example.COM." and "example.com"
// are indistinguishable past this boundary.
package dnsname

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"github.com/phishguard/phishguard/internal/shared/constants"
)

// InvalidDomainError reports input that cannot be analyzed at all. It is the
// only error the assessment entry point surfaces to callers.
type InvalidDomainError struct {
	Input  string
	Reason string
}

func (e *InvalidDomainError) Error() string {
	return fmt.Sprintf("invalid domain %q: %s", e.Input, e.Reason)
}

// Domain is an immutable value object describing one domain name.
// Construct it with Parse; the zero value is not meaningful.
type Domain struct {
	// Raw is the input exactly as the user supplied it.
	Raw string
	// Normalized is the lowercased, punycode-decoded form with any scheme,
	// path, port, and trailing dot stripped.
	Normalized string
	// ASCII is the punycode (IDNA) encoding of Normalized, suitable for
	// network lookups.
	ASCII string
	// Registrable is the effective TLD plus one label (eTLD+1).
	Registrable string
	// Label is the registrable name without its public suffix, the part a
	// typosquatter actually forges.
	Label string
	// TLD is the public suffix ("com", "co.uk", ...).
	TLD string
	// Subdomains holds any labels left of the registrable name, outermost
	// first.
	Subdomains []string
	// WasPunycode is true when the input contained IDNA-encoded labels.
	WasPunycode bool
}

// Parse validates and normalizes raw input into a Domain.
//
// Accepted inputs include bare domains, full URLs, and hosts with ports or
// trailing dots. Anything that does not reduce to a syntactically valid
// domain of at most 253 characters is rejected with *InvalidDomainError.
func Parse(raw string) (*Domain, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &InvalidDomainError{Input: raw, Reason: "empty input"}
	}

	host := extractHost(trimmed)
	host = strings.TrimSuffix(host, ".")
	host = strings.ToLower(host)

	if host == "" {
		return nil, &InvalidDomainError{Input: raw, Reason: "no host component"}
	}
	if len(host) > constants.MaxDomainLength {
		return nil, &InvalidDomainError{Input: raw, Reason: fmt.Sprintf("exceeds %d characters", constants.MaxDomainLength)}
	}
	if !strings.Contains(host, ".") {
		return nil, &InvalidDomainError{Input: raw, Reason: "missing top-level domain"}
	}
	if strings.Contains(host, "..") || strings.HasPrefix(host, ".") {
		return nil, &InvalidDomainError{Input: raw, Reason: "malformed label sequence"}
	}

	wasPunycode := strings.Contains(host, "xn--")

	// Unicode form drives lexical analysis; ASCII form drives lookups.
	unicodeHost := host
	if converted, err := idna.Lookup.ToUnicode(host); err == nil && converted != "" {
		unicodeHost = converted
	}
	asciiHost, err := idna.Lookup.ToASCII(host)
	if err != nil || asciiHost == "" {
		return nil, &InvalidDomainError{Input: raw, Reason: "not IDNA-encodable"}
	}

	for _, label := range strings.Split(asciiHost, ".") {
		if label == "" {
			return nil, &InvalidDomainError{Input: raw, Reason: "empty label"}
		}
		if len(label) > constants.MaxLabelLength {
			return nil, &InvalidDomainError{Input: raw, Reason: fmt.Sprintf("label exceeds %d characters", constants.MaxLabelLength)}
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return nil, &InvalidDomainError{Input: raw, Reason: "label starts or ends with a hyphen"}
		}
	}

	registrable, err := publicsuffix.EffectiveTLDPlusOne(unicodeHost)
	if err != nil {
		// Fall back to the ASCII host for fully punycoded names.
		registrable, err = publicsuffix.EffectiveTLDPlusOne(asciiHost)
		if err != nil {
			return nil, &InvalidDomainError{Input: raw, Reason: "no registrable domain"}
		}
	}

	suffix, _ := publicsuffix.PublicSuffix(registrable)
	label := strings.TrimSuffix(registrable, "."+suffix)

	var subdomains []string
	if prefix := strings.TrimSuffix(unicodeHost, registrable); prefix != "" {
		subdomains = strings.Split(strings.TrimSuffix(prefix, "."), ".")
	}

	return &Domain{
		Raw:         raw,
		Normalized:  unicodeHost,
		ASCII:       asciiHost,
		Registrable: registrable,
		Label:       label,
		TLD:         suffix,
		Subdomains:  subdomains,
		WasPunycode: wasPunycode,
	}, nil
}

// extractHost strips scheme, path, query, and port from user input, so both
// bare domains and pasted URLs are accepted.
func extractHost(input string) string {
	candidate := input
	if strings.Contains(candidate, "://") {
		if parsed, err := url.Parse(candidate); err == nil && parsed.Hostname() != "" {
			return parsed.Hostname()
		}
	}
	if parsed, err := url.Parse("http://" + candidate); err == nil && parsed.Hostname() != "" {
		return parsed.Hostname()
	}
	candidate = strings.TrimPrefix(candidate, "http://")
	candidate = strings.TrimPrefix(candidate, "https://")
	candidate = strings.Split(candidate, "/")[0]
	return strings.Split(candidate, ":")[0]
}

// SubdomainDepth reports how many labels sit left of the registrable name.
func (d *Domain) SubdomainDepth() int {
	return len(d.Subdomains)
}

// String returns the normalized form.
func (d *Domain) String() string {
	return d.Normalized
}
