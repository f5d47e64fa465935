package analyzer

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRunnerPreservesInputOrder(t *testing.T) {
	engine := NewEngine(EngineConfig{
		// Uneven delays so completion order differs from input order.
		HTTP: &fakeHTTP{finding: &HTTPFinding{StatusCode: 200, UsesHTTPS: true}, delay: 10 * time.Millisecond},
	})
	runner := &Runner{Concurrency: 4, RateLimit: 100}

	domains := []string{"alpha.com", "bravo.net", "charlie.org", "delta.io"}
	results := runner.Run(context.Background(), domains, engine, nil)

	if len(results) != len(domains) {
		t.Fatalf("got %d results, want %d", len(results), len(domains))
	}
	for i, res := range results {
		if res.Domain != domains[i] {
			t.Errorf("result %d is for %q, want %q", i, res.Domain, domains[i])
		}
		if res.Verdict == nil {
			t.Errorf("result %d has no verdict: %+v", i, res)
		}
	}
}

func TestRunnerReportsInvalidDomains(t *testing.T) {
	engine := NewEngine(EngineConfig{})
	runner := &Runner{Concurrency: 2, RateLimit: 100}

	results := runner.Run(context.Background(), []string{"good.com", "not a domain"}, engine, nil)

	if results[0].Error != "" || results[0].Verdict == nil {
		t.Errorf("valid domain failed: %+v", results[0])
	}
	if results[1].Error == "" || results[1].Verdict != nil {
		t.Errorf("invalid domain produced a verdict: %+v", results[1])
	}
}

func TestRunnerProgressCallback(t *testing.T) {
	engine := NewEngine(EngineConfig{})
	runner := &Runner{Concurrency: 1, RateLimit: 100}

	var mu sync.Mutex
	var calls int
	progress := func(domain string, verdict *RiskVerdict, err error, duration float64) {
		mu.Lock()
		calls++
		mu.Unlock()
	}

	runner.Run(context.Background(), []string{"a.com", "b.com", "c.com"}, engine, progress)
	if calls != 3 {
		t.Errorf("progress called %d times, want 3", calls)
	}
}
