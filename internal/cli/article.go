package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var articleCmd = &cobra.Command{
	Use:   "article [law] [number]",
	Short: "Print one article in full",
	Args:  cobra.ExactArgs(2),
	RunE:  runArticle,
}

func init() {
	rootCmd.AddCommand(articleCmd)
}

func runArticle(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid article number %q", args[1])
	}

	engine, _, _, err := loadEngine()
	if err != nil {
		return err
	}

	a, ok := engine.Article(args[0], number)
	if !ok {
		return fmt.Errorf("article %s %d not found", args[0], number)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s - Artículo %d", a.Law, a.Number)
	if a.Title != "" {
		fmt.Fprintf(out, ": %s", a.Title)
	}
	fmt.Fprintf(out, "\n\n%s\n", a.Content)
	return nil
}
