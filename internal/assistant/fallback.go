package assistant

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/agenthands/chapi/internal/legal"
	"github.com/agenthands/chapi/internal/llm"
)

const (
	fallbackArticles = 4
	fallbackSnippet  = 200

	msgNoResponse  = "Disculpa, el servicio de IA no respondió. Por favor intenta de nuevo más tarde."
	msgAPIKey      = "Disculpa, hay un problema con la configuración de la API. Por favor, verifica que la clave de API de Gemini esté configurada correctamente."
	msgUnavailable = "Disculpa, el servicio de IA está temporalmente no disponible debido a límites de cuota o carga del servicio. Por favor, intenta de nuevo más tarde."
	msgSafety      = "Disculpa, tu consulta fue bloqueada por los filtros de seguridad. Por favor, reformula tu pregunta de manera más clara."
	msgGeneric     = "Hubo un problema al procesar tu consulta. Por favor, intenta reformular tu pregunta de manera más clara."
)

// fallbackAnswer lists the best articles when the model returned no text.
func fallbackAnswer(articles []legal.Article) string {
	if len(articles) == 0 {
		return msgNoResponse
	}
	if len(articles) > fallbackArticles {
		articles = articles[:fallbackArticles]
	}

	lines := make([]string, len(articles))
	for i, a := range articles {
		title := ""
		if a.Title != "" {
			title = " - " + a.Title
		}
		lines[i] = fmt.Sprintf("%d. %s Art %d%s: %s...", i+1, a.Law, a.Number, title, legal.Snippet(a.Content, fallbackSnippet))
	}

	return fmt.Sprintf("Disculpa, el servicio de IA no devolvió texto. Mientras tanto, aquí hay referencias relevantes que pueden ayudarte:\n%s\n\n"+
		"Responde con el número (1-%d) para que te muestre el texto completo del artículo, o escribe \"más\" para intentar otra búsqueda.",
		strings.Join(lines, "\n"), len(articles))
}

// isTransient reports whether a failed call is worth retrying.
func isTransient(err error) bool {
	switch llm.StatusCode(err) {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "overload") || strings.Contains(msg, "quota")
}

// friendlyError maps a generator failure to the message shown to the user.
func friendlyError(err error) string {
	msg := strings.ToLower(err.Error())
	code := llm.StatusCode(err)

	switch {
	case strings.Contains(msg, "api_key") || strings.Contains(msg, "api key") ||
		code == http.StatusUnauthorized || code == http.StatusForbidden:
		return msgAPIKey
	case code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable || strings.Contains(msg, "quota"):
		return msgUnavailable
	case errors.Is(err, llm.ErrBlocked) || strings.Contains(msg, "safety"):
		return msgSafety
	default:
		return msgGeneric
	}
}
