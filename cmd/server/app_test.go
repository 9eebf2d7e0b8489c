package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/chapi/internal/config"
	"github.com/agenthands/chapi/internal/legal"
)

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	group := filepath.Join(dir, "COIPTR")
	require.NoError(t, os.MkdirAll(group, 0o755))

	index := `{"nombreLey":"COIPTR","totalArticulos":2,"articulos":[
  {"numero":385,"titulo":"Exceso de velocidad","archivo":"a385.txt"},
  {"numero":386,"titulo":"Licencias","archivo":"a386.txt"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(group, legal.DescriptorFile), []byte(index), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(group, "a385.txt"), []byte("Exceder el límite de velocidad."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(group, "a386.txt"), []byte("Conducir sin licencia."), 0o644))
	return dir
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Corpus.BaseDir = writeCorpus(t)
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Model = "llama3"
	cfg.Storage.Driver = "memory"
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewApp_HealthReportsLoadedArticles(t *testing.T) {
	a, err := newApp(context.Background(), testConfig(t), zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Status   string `json:"status"`
		Articles int    `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, 2, out.Articles)
}

func TestNewApp_SQLiteStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.Path = t.TempDir()

	a, err := newApp(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	assert.FileExists(t, filepath.Join(cfg.Storage.Path, "chat.db"))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewApp_RejectsUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.Provider = "nope"

	_, err := newApp(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewApp_GeminiNeedsKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.Provider = "gemini"
	cfg.LLM.APIKey = ""

	_, err := newApp(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
