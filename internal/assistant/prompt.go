package assistant

import (
	"github.com/agenthands/chapi/internal/legal"
)

const (
	truncationNotice = "\n\n[EL CONTEXTO HA SIDO RECORTADO POR LONGITUD]"
	continuePrompt   = "Por favor, continúa la respuesta."
)

// buildUserMessage joins the legal context and the question into one user
// turn, cut to maxChars runes.
func buildUserMessage(articleContext, question string, maxChars int) string {
	msg := articleContext + "Pregunta: " + question
	if maxChars <= 0 {
		return msg
	}

	runes := []rune(msg)
	if len(runes) <= maxChars {
		return msg
	}
	return string(runes[:maxChars]) + truncationNotice
}

func renderContext(mode string, articles []legal.Article) string {
	if mode == "full" {
		return legal.FormatContext(articles)
	}
	return legal.FormatSummary(articles)
}
