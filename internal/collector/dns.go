package collector

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/miekg/dns"

	"github.com/phishguard/phishguard/internal/shared/constants"
)

// VariantProber resolves A records for typo variants of a domain to find out
// which of them are actually registered.
type VariantProber struct {
	// Nameserver is a host:port resolver address. Defaults to 8.8.8.8:53.
	Nameserver string
	// Concurrency bounds parallel lookups. Defaults to
	// constants.VariantProbeConcurrency.
	Concurrency int
	// Timeout applies per query. Defaults to constants.VariantProbeTimeout.
	Timeout time.Duration
}

// Probe returns the subset of variants with at least one A record, sorted.
// Lookup errors are treated as "not registered"; a variant prober is a
// best-effort reconnaissance tool, not a resolver of record.
func (p *VariantProber) Probe(ctx context.Context, variants []string) []string {
	nameserver := p.Nameserver
	if nameserver == "" {
		nameserver = "8.8.8.8:53"
	}
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = constants.VariantProbeConcurrency
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = constants.VariantProbeTimeout
	}

	client := &dns.Client{Timeout: timeout}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		registered []string
	)
	sem := make(chan struct{}, concurrency)

	for _, variant := range variants {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}

		go func(domain string) {
			defer wg.Done()
			defer func() { <-sem }()

			msg := new(dns.Msg)
			msg.SetQuestion(dns.Fqdn(domain), dns.TypeA)
			msg.RecursionDesired = true

			resp, _, err := client.ExchangeContext(ctx, msg, nameserver)
			if err == nil && resp != nil && len(resp.Answer) > 0 {
				mu.Lock()
				registered = append(registered, domain)
				mu.Unlock()
			}
		}(variant)
	}

	wg.Wait()
	sort.Strings(registered)
	return registered
}
