package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phishguard/phishguard/internal/analyzer"
	"github.com/phishguard/phishguard/internal/collector"
	"github.com/phishguard/phishguard/internal/shared/constants"
)

const (
	defaultAssessConcurrency = 4
	defaultAssessRateLimit   = 10
)

// AssessRuntimeConfig consolidates flag-driven settings for the assess
// command.
type AssessRuntimeConfig struct {
	Concurrency      int
	RateLimit        int
	CollectorTimeout time.Duration
	Offline          bool
	JSONOutput       bool
	OutputPath       string
	ProgressEnabled  bool
}

// resolveAssessConfig merges flag values with config-file defaults. Flags
// win; viper fills anything left at its zero value.
func resolveAssessConfig(cmd *cobra.Command) AssessRuntimeConfig {
	cfg := AssessRuntimeConfig{}
	cfg.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	cfg.RateLimit, _ = cmd.Flags().GetInt("rate-limit")
	cfg.CollectorTimeout, _ = cmd.Flags().GetDuration("timeout")
	cfg.Offline, _ = cmd.Flags().GetBool("offline")
	cfg.JSONOutput, _ = cmd.Flags().GetBool("json")
	cfg.OutputPath, _ = cmd.Flags().GetString("output")
	cfg.ProgressEnabled, _ = cmd.Flags().GetBool("progress")

	if cfg.Concurrency <= 0 {
		if v := viper.GetInt("assess.concurrency"); v > 0 {
			cfg.Concurrency = v
		} else {
			cfg.Concurrency = defaultAssessConcurrency
		}
	}
	if cfg.RateLimit <= 0 {
		if v := viper.GetInt("assess.rate_limit"); v > 0 {
			cfg.RateLimit = v
		} else {
			cfg.RateLimit = defaultAssessRateLimit
		}
	}
	if cfg.CollectorTimeout <= 0 {
		if v := viper.GetDuration("assess.collector_timeout"); v > 0 {
			cfg.CollectorTimeout = v
		} else {
			cfg.CollectorTimeout = constants.DefaultCollectorTimeout
		}
	}
	return cfg
}

// newEngine builds the assessment engine. Offline mode leaves all three
// collectors nil so their signals degrade to Unavailable.
func newEngine(cfg AssessRuntimeConfig) *analyzer.Engine {
	engineCfg := analyzer.EngineConfig{
		Corpus:           corpus,
		CollectorTimeout: cfg.CollectorTimeout,
		Logger:           logger,
	}
	if !cfg.Offline {
		engineCfg.HTTP = &collector.HTTPCollector{UserAgent: "phishguard/" + Version}
		engineCfg.TLS = &collector.TLSCollector{}
		engineCfg.Whois = &collector.WhoisCollector{}
	}
	return analyzer.NewEngine(engineCfg)
}
