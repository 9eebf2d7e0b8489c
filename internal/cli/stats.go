package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show loaded laws and skipped files",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	engine, cfg, diags, err := loadEngine()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Directory: %s\n", cfg.Corpus.BaseDir)
	fmt.Fprintf(out, "Articles:  %d\n", engine.Total())
	for _, lc := range engine.Corpus().Laws() {
		fmt.Fprintf(out, "  %-10s %d\n", lc.Law, lc.Articles)
	}
	if len(diags) > 0 {
		fmt.Fprintf(out, "Skipped (%d):\n", len(diags))
		for _, d := range diags {
			fmt.Fprintf(out, "  %s\n", d)
		}
	}
	return nil
}
