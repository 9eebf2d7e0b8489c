package legal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatContext_Empty(t *testing.T) {
	assert.Equal(t, "", FormatContext(nil))
	assert.Equal(t, "", FormatContext([]Article{}))
}

func TestFormatContext(t *testing.T) {
	out := FormatContext([]Article{
		NewArticle("COIP", 385, "Exceso de velocidad", "  Texto completo del artículo.\n"),
		NewArticle("LOTAIP", 2, "", "Otro texto."),
	})

	assert.True(t, strings.HasPrefix(out, contextHeader))
	assert.Contains(t, out, "COIP - Artículo 385: Exceso de velocidad\n\nTexto completo del artículo.\n")
	assert.Contains(t, out, "LOTAIP - Artículo 2\n\nOtro texto.\n")
	assert.Equal(t, 3, strings.Count(out, ruleLine))
}

func TestFormatSummary(t *testing.T) {
	long := strings.Repeat("palabra ", 40)
	out := FormatSummary([]Article{
		NewArticle("COIP", 385, "Exceso de velocidad", "Se   sancionará\n a quien exceda."),
		NewArticle("COIPTR", 10, "", long),
	})

	assert.True(t, strings.HasPrefix(out, summaryHeader))
	assert.Contains(t, out, "[COIP - Art 385: Exceso de velocidad] Se sancionará a quien exceda....\n")
	assert.Contains(t, out, "[COIPTR - Art 10] "+strings.TrimSpace(long)[:SummarySnippetRunes]+"...\n")
	assert.True(t, strings.HasSuffix(out, summaryFooter))
	assert.Equal(t, "", FormatSummary(nil))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "ñandú y", Snippet("  ñandú \n\n y  más ", 7))
	assert.Equal(t, "corto", Snippet("corto", 200))
	assert.Equal(t, "", Snippet("texto", 0))
}
