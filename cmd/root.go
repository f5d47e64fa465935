// Package cmd implements the phishguard command line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/analyzer"
)

var cfgFile string
var corpusFile string
var verbose bool
var logger *zap.SugaredLogger
var corpus *analyzer.Corpus

var rootCmd = &cobra.Command{
	Use:   "phishguard",
	Short: "Assess domains for phishing risk from lexical, brand, and network evidence",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".phishguard")
			viper.SetConfigType("yaml")
		}
		_ = viper.ReadInConfig()

		// init logger
		var l *zap.Logger
		var err error
		if verbose {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l.Sugar()

		// load brand corpus (flag wins over config file)
		path := corpusFile
		if path == "" {
			path = viper.GetString("corpus_file")
		}
		if path == "" {
			corpus = analyzer.DefaultCorpus()
			return nil
		}
		corpus, err = analyzer.LoadCorpusFile(path)
		if err != nil {
			return fmt.Errorf("failed to load brand corpus: %w", err)
		}
		logger.Debugw("corpus loaded", "path", path, "brands", len(corpus.Brands))

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// normalizeFlags accepts snake_case spellings of flags, matching the config
// file key style.
func normalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	rootCmd.SetGlobalNormalizationFunc(normalizeFlags)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.phishguard.yaml)")
	rootCmd.PersistentFlags().StringVar(&corpusFile, "corpus", "", "brand corpus YAML file (default: built-in corpus)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
