package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"github.com/phishguard/phishguard/internal/analyzer"
)

// privacyMarkers are lowercase fragments seen in registrant fields of
// privacy-protected registrations.
var privacyMarkers = []string{
	"redacted",
	"privacy",
	"whoisguard",
	"domains by proxy",
	"contact privacy",
	"identity protect",
	"withheld",
	"data protected",
}

// WhoisCollector queries registration data for the registrable domain.
type WhoisCollector struct {
	// Server overrides the whois server selection, for tests.
	Server string
}

// Lookup implements analyzer.WhoisCapability. The underlying client has no
// context plumbing, so the context deadline is translated into a socket
// timeout and re-checked afterwards.
func (c *WhoisCollector) Lookup(ctx context.Context, domain string) (*analyzer.WhoisFinding, error) {
	client := whois.NewClient()
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, ctx.Err()
		}
		client.SetTimeout(remaining)
	}

	var servers []string
	if c.Server != "" {
		servers = []string{c.Server}
	}
	raw, err := client.Whois(domain, servers...)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("whois query: %w", err)
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("whois parse: %w", err)
	}

	return interpretWhois(parsed, time.Now()), nil
}

// interpretWhois reduces a parsed record to the fields the scorer cares
// about. A missing creation date is reported as AgeDays -1 so the caller can
// tell "unknown" apart from "registered today".
func interpretWhois(info whoisparser.WhoisInfo, now time.Time) *analyzer.WhoisFinding {
	finding := &analyzer.WhoisFinding{AgeDays: -1}

	if info.Domain != nil && info.Domain.CreatedDateInTime != nil {
		created := *info.Domain.CreatedDateInTime
		finding.CreatedAt = &created
		if age := now.Sub(created); age >= 0 {
			finding.AgeDays = int(age.Hours() / 24)
		} else {
			finding.AgeDays = 0
		}
	}
	if info.Registrar != nil {
		finding.Registrar = info.Registrar.Name
	}
	if info.Registrant != nil {
		finding.PrivacyProtected = hasPrivacyMarker(info.Registrant.Name) ||
			hasPrivacyMarker(info.Registrant.Organization)
	}

	return finding
}

func hasPrivacyMarker(field string) bool {
	lower := strings.ToLower(field)
	for _, marker := range privacyMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
