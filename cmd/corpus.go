package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "List the brand corpus used for impersonation matching",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		if jsonOut {
			return writeJSONOutput(cmd.OutOrStdout(), corpus.Brands)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-10s %s\n", "BRAND", "CATEGORY", "TRUSTED DOMAINS")
		for _, brand := range corpus.Brands {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-10s %v\n", brand.Name, brand.Category, brand.Domains)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d brands\n", len(corpus.Brands))
		return nil
	},
}

func init() {
	corpusCmd.Flags().Bool("json", false, "Emit JSON instead of a table")
	rootCmd.AddCommand(corpusCmd)
}
