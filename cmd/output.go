package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/phishguard/phishguard/internal/analyzer"
	"github.com/phishguard/phishguard/internal/shared/constants"
)

// BatchReport wraps batch results with run metadata for machine-readable
// output.
type BatchReport struct {
	RunID       string                 `json:"run_id"`
	StartedAt   time.Time              `json:"started_at"`
	CompletedAt time.Time              `json:"completed_at"`
	Total       int                    `json:"total"`
	Assessed    int                    `json:"assessed"`
	Rejected    int                    `json:"rejected"`
	Results     []analyzer.BatchResult `json:"results"`
}

func newBatchReport(started, completed time.Time, results []analyzer.BatchResult) BatchReport {
	report := BatchReport{
		RunID:       uuid.NewString(),
		StartedAt:   started.UTC(),
		CompletedAt: completed.UTC(),
		Total:       len(results),
		Results:     results,
	}
	for _, res := range results {
		if res.Error == "" {
			report.Assessed++
		} else {
			report.Rejected++
		}
	}
	return report
}

// renderVerdict prints one verdict as colored human-readable text.
func renderVerdict(w io.Writer, v *analyzer.RiskVerdict) {
	fmt.Fprintf(w, "\nDomain:  %s\n", v.Domain)
	fmt.Fprintf(w, "Score:   %d/100\n", v.Score)
	fmt.Fprintf(w, "Tier:    %s\n", formatTierWithColor(v.Tier))
	fmt.Fprintf(w, "Scan:    %s (%.0fms)\n", v.ScanID, v.DurationMS)

	if v.Brand.Tier != analyzer.MatchNone && !v.Brand.Trusted {
		fmt.Fprintf(w, "Brand:   resembles %q (%s match, confidence %.2f)\n",
			v.Brand.Brand, v.Brand.Tier, v.Brand.Confidence)
	}

	lines := analyzer.Explain(v.Reasons)
	if len(lines) == 0 {
		fmt.Fprintf(w, "\nNo risk indicators observed.\n")
		return
	}
	fmt.Fprintf(w, "\nRisk indicators:\n")
	for _, line := range lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// renderBatchSummary prints a one-line-per-domain table for batch runs.
func renderBatchSummary(w io.Writer, results []analyzer.BatchResult) {
	fmt.Fprintf(w, "\n%-40s %-6s %s\n", "DOMAIN", "SCORE", "TIER")
	for _, res := range results {
		if res.Error != "" {
			fmt.Fprintf(w, "%-40s %-6s %s\n", res.Domain, "-", colorError("error: "+res.Error))
			continue
		}
		fmt.Fprintf(w, "%-40s %-6d %s\n", res.Verdict.Domain, res.Verdict.Score, formatTierWithColor(res.Verdict.Tier))
	}
}

func writeJSONOutput(w io.Writer, payload interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// writeResultsFile persists results as indented JSON at path.
func writeResultsFile(path string, payload interface{}) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	if err := writeJSONOutput(f, payload); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
