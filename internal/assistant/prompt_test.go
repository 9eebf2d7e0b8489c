package assistant

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/chapi/internal/legal"
	"github.com/agenthands/chapi/internal/llm"
)

func TestBuildUserMessage(t *testing.T) {
	assert.Equal(t, "CTX\nPregunta: hola", buildUserMessage("CTX\n", "hola", 2000))

	long := strings.Repeat("á", 50)
	got := buildUserMessage(long, "pregunta", 20)
	assert.Equal(t, strings.Repeat("á", 20)+truncationNotice, got)

	assert.Equal(t, long+"Pregunta: x", buildUserMessage(long, "x", 0))
}

func TestFallbackAnswer(t *testing.T) {
	var articles []legal.Article
	for i := 1; i <= 6; i++ {
		articles = append(articles, legal.NewArticle("COIP", i, "", strings.Repeat("x", 300)))
	}

	out := fallbackAnswer(articles)

	assert.Contains(t, out, "4. COIP Art 4: "+strings.Repeat("x", 200)+"...")
	assert.NotContains(t, out, "5. COIP")
	assert.Contains(t, out, "(1-4)")
}

func TestFriendlyError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New("googleapi: API key not valid"), msgAPIKey},
		{&llm.APIError{Provider: "openai", StatusCode: 401, Err: errors.New("unauthorized")}, msgAPIKey},
		{&llm.APIError{Provider: "gemini", StatusCode: 429, Err: errors.New("too many")}, msgUnavailable},
		{errors.New("quota exhausted"), msgUnavailable},
		{fmt.Errorf("gemini: %w", llm.ErrBlocked), msgSafety},
		{errors.New("something else"), msgGeneric},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, friendlyError(tc.err), "err %v", tc.err)
	}
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(&llm.APIError{StatusCode: 429, Err: errors.New("x")}))
	assert.True(t, isTransient(&llm.APIError{StatusCode: 503, Err: errors.New("x")}))
	assert.True(t, isTransient(errors.New("The model is overloaded")))
	assert.True(t, isTransient(errors.New("Quota exceeded")))
	assert.False(t, isTransient(&llm.APIError{StatusCode: 400, Err: errors.New("bad request")}))
}
