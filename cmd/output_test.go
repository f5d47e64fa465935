package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/phishguard/phishguard/internal/analyzer"
)

func TestRenderVerdict(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	verdict := &analyzer.RiskVerdict{
		ScanID: "scan-42",
		Domain: "paypa1-secure-login.com",
		Score:  95,
		Tier:   analyzer.TierCritical,
		Brand: analyzer.BrandMatchResult{
			Brand:      "paypal",
			Tier:       analyzer.MatchExact,
			Confidence: 1.0,
		},
		Reasons: []analyzer.Reason{
			{Code: "brand_match_exact", Source: analyzer.SourceBrand, Weight: 40, Text: "matches a known brand after homoglyph folding"},
			{Code: "homoglyph_detected", Source: analyzer.SourceLexical, Weight: 20, Text: "contains lookalike characters"},
		},
	}

	var buf bytes.Buffer
	renderVerdict(&buf, verdict)
	out := buf.String()

	for _, want := range []string{
		"paypa1-secure-login.com",
		"95/100",
		"Critical",
		`resembles "paypal"`,
		"Risk indicators:",
		"[+40]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderVerdictNoIndicators(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	verdict := &analyzer.RiskVerdict{
		Domain: "example.com",
		Score:  0,
		Tier:   analyzer.TierSafe,
		Brand:  analyzer.BrandMatchResult{Tier: analyzer.MatchNone},
	}

	var buf bytes.Buffer
	renderVerdict(&buf, verdict)

	if !strings.Contains(buf.String(), "No risk indicators observed") {
		t.Errorf("output missing clean message:\n%s", buf.String())
	}
}

func TestRenderBatchSummary(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	results := []analyzer.BatchResult{
		{Domain: "example.com", Verdict: &analyzer.RiskVerdict{Domain: "example.com", Score: 0, Tier: analyzer.TierSafe}},
		{Domain: "!!", Error: "no host component"},
	}

	var buf bytes.Buffer
	renderBatchSummary(&buf, results)
	out := buf.String()

	if !strings.Contains(out, "example.com") || !strings.Contains(out, "Safe") {
		t.Errorf("output missing verdict row:\n%s", out)
	}
	if !strings.Contains(out, "error: no host component") {
		t.Errorf("output missing error row:\n%s", out)
	}
}

func TestNewBatchReport(t *testing.T) {
	started := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	completed := started.Add(3 * time.Second)
	results := []analyzer.BatchResult{
		{Domain: "example.com", Verdict: &analyzer.RiskVerdict{Domain: "example.com"}},
		{Domain: "example.net", Verdict: &analyzer.RiskVerdict{Domain: "example.net"}},
		{Domain: "!!", Error: "no host component"},
	}

	report := newBatchReport(started, completed, results)

	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if report.Total != 3 || report.Assessed != 2 || report.Rejected != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", report.Total, report.Assessed, report.Rejected)
	}
	if !report.StartedAt.Equal(started) || !report.CompletedAt.Equal(completed) {
		t.Errorf("timestamps = %v..%v, want %v..%v", report.StartedAt, report.CompletedAt, started, completed)
	}
}

func TestWriteResultsFile(t *testing.T) {
	path := t.TempDir() + "/results.json"
	verdict := &analyzer.RiskVerdict{Domain: "example.com", Tier: analyzer.TierSafe}

	if err := writeResultsFile(path, verdict); err != nil {
		t.Fatalf("writeResultsFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"example.com"`) {
		t.Errorf("file content missing domain: %s", data)
	}
}
