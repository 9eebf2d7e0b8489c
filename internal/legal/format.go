package legal

import (
	"fmt"
	"strings"
)

const (
	contextHeader = "ARTÍCULOS LEGALES RELEVANTES:\n"
	summaryHeader = "ARTÍCULOS LEGALES RELEVANTES (resumen):\n"
	summaryFooter = "\nIMPORTANTE: Usa los artículos anteriores como referencia y cita los números cuando los uses.\n\n"

	// SummarySnippetRunes is the snippet length used by FormatSummary.
	SummarySnippetRunes = 150
)

var ruleLine = strings.Repeat("─", 60)

// FormatContext renders articles in full for a generator prompt. An empty
// slice yields "", meaning there is no legal context to offer.
func FormatContext(articles []Article) string {
	if len(articles) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	b.WriteString(ruleLine)
	b.WriteString("\n")
	for _, a := range articles {
		fmt.Fprintf(&b, "%s - Artículo %d", a.Law, a.Number)
		if a.Title != "" {
			fmt.Fprintf(&b, ": %s", a.Title)
		}
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(a.Content))
		b.WriteString("\n")
		b.WriteString(ruleLine)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSummary renders one short snippet per article, for prompts where the
// full article text would be too large.
func FormatSummary(articles []Article) string {
	if len(articles) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(summaryHeader)
	for _, a := range articles {
		title := ""
		if a.Title != "" {
			title = ": " + a.Title
		}
		fmt.Fprintf(&b, "[%s - Art %d%s] %s...\n", a.Law, a.Number, title, Snippet(a.Content, SummarySnippetRunes))
	}
	b.WriteString(summaryFooter)
	return b.String()
}

// Snippet collapses whitespace in content and keeps the first n runes.
func Snippet(content string, n int) string {
	return prefix(strings.Join(strings.Fields(content), " "), n)
}
