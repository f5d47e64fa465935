package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phishguard/phishguard/internal/analyzer"
)

var assessCmd = &cobra.Command{
	Use:   "assess [domain ...]",
	Short: "Assess one or more domains for phishing risk",
	Long: `Assess runs the full risk pipeline per domain: lexical analysis, brand
impersonation matching, and concurrent HTTP, TLS, and WHOIS collection.
Domains come from arguments, or from stdin (one per line) when no
arguments are given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveAssessConfig(cmd)

		domains, err := collectInputs(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if len(domains) == 0 {
			return fmt.Errorf("no domains to assess (pass arguments or pipe one per line on stdin)")
		}

		engine := newEngine(cfg)

		if len(domains) == 1 {
			verdict, err := engine.Assess(cmd.Context(), domains[0])
			if err != nil {
				return err
			}
			if cfg.OutputPath != "" {
				if err := writeResultsFile(cfg.OutputPath, verdict); err != nil {
					return err
				}
			}
			if cfg.JSONOutput {
				return writeJSONOutput(cmd.OutOrStdout(), verdict)
			}
			renderVerdict(cmd.OutOrStdout(), verdict)
			return nil
		}

		return runBatch(cmd, cfg, engine, domains)
	},
}

func runBatch(cmd *cobra.Command, cfg AssessRuntimeConfig, engine *analyzer.Engine, domains []string) error {
	var progress *progressPrinter
	var progressFn analyzer.ProgressFunc
	if cfg.ProgressEnabled && !cfg.JSONOutput {
		progress = newProgressPrinter(len(domains), "assess")
		progress.Start()
		progressFn = func(domain string, verdict *analyzer.RiskVerdict, err error, duration float64) {
			progress.Increment(err == nil, duration)
		}
	}

	start := time.Now()
	runner := &analyzer.Runner{Concurrency: cfg.Concurrency, RateLimit: cfg.RateLimit}
	results := runner.Run(cmd.Context(), domains, engine, progressFn)

	if progress != nil {
		progress.Stop()
	}

	report := newBatchReport(start, time.Now(), results)
	if cfg.OutputPath != "" {
		if err := writeResultsFile(cfg.OutputPath, report); err != nil {
			return err
		}
	}
	if cfg.JSONOutput {
		return writeJSONOutput(cmd.OutOrStdout(), report)
	}

	renderBatchSummary(cmd.OutOrStdout(), results)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s Assessed %d domains in %.1fs\n",
		colorInfo("→"), len(domains), time.Since(start).Seconds())
	return nil
}

// collectInputs merges argument domains with stdin lines. Stdin is only
// consulted when no arguments are given. Blank lines and #-comments are
// skipped.
func collectInputs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if f, ok := stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil || (info.Mode()&os.ModeCharDevice) != 0 {
			// Interactive terminal, nothing piped.
			return nil, nil
		}
	}

	var domains []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		domains = append(domains, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return domains, nil
}

func init() {
	assessCmd.Flags().Int("concurrency", 0, "Concurrent assessments for batch input (default 4)")
	assessCmd.Flags().Int("rate-limit", 0, "Assessment starts per second for batch input (default 10)")
	assessCmd.Flags().Duration("timeout", 0, "Per-collector timeout (default 5s)")
	assessCmd.Flags().Bool("offline", false, "Skip network collectors, score lexical and brand evidence only")
	assessCmd.Flags().Bool("json", false, "Emit JSON instead of human-readable output")
	assessCmd.Flags().String("output", "", "Write JSON results to a file")
	assessCmd.Flags().Bool("progress", true, "Show progress for batch input")
	rootCmd.AddCommand(assessCmd)
}
