package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/chapi/internal/legal"
)

var (
	searchLimit   int
	searchJSON    bool
	searchContext string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Rank articles for a question",
	Long: `Ranks articles by keyword relevance to the query.
Title words, body words, synonyms and explicit article numbers all add to the score.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", legal.DefaultLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchContext, "context", "", "print the prompt context instead (full|summary)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	engine, _, _, err := loadEngine()
	if err != nil {
		return err
	}

	results := engine.Rank(args[0], searchLimit)
	out := cmd.OutOrStdout()

	switch searchContext {
	case "":
	case "full", "summary":
		articles := make([]legal.Article, len(results))
		for i, r := range results {
			articles[i] = r.Article
		}
		if searchContext == "full" {
			fmt.Fprint(out, legal.FormatContext(articles))
		} else {
			fmt.Fprint(out, legal.FormatSummary(articles))
		}
		return nil
	default:
		return fmt.Errorf("unknown context mode %q (want full or summary)", searchContext)
	}

	if searchJSON {
		if results == nil {
			results = []legal.ScoredArticle{}
		}
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	for i, r := range results {
		// Format: [N] LAW Art N: Title (score)
		fmt.Fprintf(out, "  [%d] %s Art %d", i+1, r.Article.Law, r.Article.Number)
		if r.Article.Title != "" {
			fmt.Fprintf(out, ": %s", r.Article.Title)
		}
		fmt.Fprintf(out, " (%d)\n      %s\n\n", r.Score, legal.Snippet(r.Article.Content, legal.SummarySnippetRunes))
	}
	return nil
}
