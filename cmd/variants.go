package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phishguard/phishguard/internal/analyzer"
	"github.com/phishguard/phishguard/internal/collector"
	"github.com/phishguard/phishguard/internal/dnsname"
)

var variantsCmd = &cobra.Command{
	Use:   "variants <domain>",
	Short: "Generate typosquatting variants of a domain",
	Long: `Variants lists plausible typosquats of the given domain: character
omissions, adjacent transpositions, lookalike substitutions, and TLD swaps.
With --probe, each variant is resolved over DNS to find out which are
actually registered.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		probe, _ := cmd.Flags().GetBool("probe")
		nameserver, _ := cmd.Flags().GetString("nameserver")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		jsonOut, _ := cmd.Flags().GetBool("json")

		d, err := dnsname.Parse(args[0])
		if err != nil {
			return err
		}
		variants := analyzer.TypoVariants(d)

		var registered []string
		if probe {
			prober := &collector.VariantProber{Nameserver: nameserver, Timeout: timeout}
			registered = prober.Probe(cmd.Context(), variants)
		}

		if jsonOut {
			return writeJSONOutput(cmd.OutOrStdout(), map[string]interface{}{
				"domain":     d.Registrable,
				"variants":   variants,
				"registered": registered,
			})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d variants of %s:\n", len(variants), d.Registrable)
		registeredSet := make(map[string]bool, len(registered))
		for _, r := range registered {
			registeredSet[r] = true
		}
		for _, v := range variants {
			if registeredSet[v] {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", v, colorError("[registered]"))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", v)
			}
		}
		return nil
	},
}

func init() {
	variantsCmd.Flags().Bool("probe", false, "Resolve variants over DNS to find registered ones")
	variantsCmd.Flags().String("nameserver", "", "Resolver address as host:port (default 8.8.8.8:53)")
	variantsCmd.Flags().Duration("timeout", 2*time.Second, "Per-query DNS timeout")
	variantsCmd.Flags().Bool("json", false, "Emit JSON instead of human-readable output")
	rootCmd.AddCommand(variantsCmd)
}
