// Package cli implements legalsearch, an offline tool for querying the
// legal corpus without a running server or generator.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/chapi/internal/config"
	"github.com/agenthands/chapi/internal/legal"
)

var (
	corpusDir  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "legalsearch",
	Short:         "Query the traffic-law corpus offline",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&corpusDir, "dir", "", "articles directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadEngine builds the engine from config and flags, returning the load diagnostics.
func loadEngine() (*legal.Engine, *config.Config, []legal.Diagnostic, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv(os.Getenv)
	if corpusDir != "" {
		cfg.Corpus.BaseDir = corpusDir
	}

	corpus, diags := legal.Load(cfg.Corpus.BaseDir, cfg.Corpus.Groups)
	engine := legal.NewEngine(corpus, legal.NewScorer(cfg.Retrieval.StopWords, cfg.Retrieval.Synonyms))
	return engine, cfg, diags, nil
}
