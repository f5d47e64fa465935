package analyzer

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// BatchResult pairs one input domain with its verdict or rejection.
type BatchResult struct {
	Domain  string       `json:"domain"`
	Verdict *RiskVerdict `json:"verdict,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// ProgressFunc is invoked after each assessment finishes.
type ProgressFunc func(domain string, verdict *RiskVerdict, err error, duration float64)

// Runner assesses many domains through a bounded worker pool with a global
// rate limit on assessment starts.
type Runner struct {
	Concurrency int // Maximum number of concurrent assessments
	RateLimit   int // Assessment starts per second (global)
}

// Run assesses every domain and returns results in input order regardless of
// completion order. A cancelled context stops scheduling new work; domains
// that never ran are reported with the context error.
func (r *Runner) Run(ctx context.Context, domains []string, engine *Engine, progressFn ProgressFunc) []BatchResult {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	rateLimit := r.RateLimit
	if rateLimit <= 0 {
		rateLimit = 1
	}

	limiter := rate.NewLimiter(rate.Limit(rateLimit), rateLimit)
	sem := make(chan struct{}, concurrency)
	results := make([]BatchResult, len(domains))

	var wg sync.WaitGroup
	for i, domain := range domains {
		wg.Add(1)
		go func(slot int, target string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if err := limiter.Wait(ctx); err != nil {
				results[slot] = BatchResult{Domain: target, Error: err.Error()}
				return
			}

			start := time.Now()
			verdict, err := engine.Assess(ctx, target)
			duration := time.Since(start).Seconds()

			if progressFn != nil {
				progressFn(target, verdict, err, duration)
			}

			res := BatchResult{Domain: target, Verdict: verdict}
			if err != nil {
				res.Error = err.Error()
			}
			results[slot] = res
		}(i, domain)
	}
	wg.Wait()

	return results
}
