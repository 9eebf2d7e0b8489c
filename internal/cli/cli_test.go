package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/chapi/internal/legal"
)

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	group := filepath.Join(dir, "COIPTR")
	require.NoError(t, os.MkdirAll(group, 0o755))

	index := `{
  "nombreLey": "COIPTR",
  "totalArticulos": 2,
  "articulos": [
    {"numero": 385, "titulo": "Exceso de velocidad", "archivo": "articulo_385.txt"},
    {"numero": 386, "titulo": "Licencia de conducir", "archivo": "articulo_386.txt"}
  ]
}`
	require.NoError(t, os.WriteFile(filepath.Join(group, legal.DescriptorFile), []byte(index), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(group, "articulo_385.txt"), []byte("Será sancionado quien exceda el límite de velocidad."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(group, "articulo_386.txt"), []byte("Conducir sin licencia vigente."), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	searchLimit, searchJSON, searchContext = legal.DefaultLimit, false, ""
	corpusDir, configPath = "", filepath.Join(t.TempDir(), "missing.toml")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSearchCmd_Metadata(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)

	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)

	require.NotNil(t, rootCmd.PersistentFlags().Lookup("dir"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := run(t, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_Table(t *testing.T) {
	dir := writeCorpus(t)

	out, err := run(t, "search", "--dir", dir, "artículo 386")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] COIPTR Art 386: Licencia de conducir")
}

func TestSearchCmd_JSON(t *testing.T) {
	dir := writeCorpus(t)

	out, err := run(t, "search", "--dir", dir, "--json", "-n", "1", "exceso de velocidad")
	require.NoError(t, err)

	var results []legal.ScoredArticle
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 385, results[0].Article.Number)
}

func TestSearchCmd_NoResults(t *testing.T) {
	dir := writeCorpus(t)

	out, err := run(t, "search", "--dir", dir, "zzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_Context(t *testing.T) {
	dir := writeCorpus(t)

	out, err := run(t, "search", "--dir", dir, "--context", "summary", "velocidad")
	require.NoError(t, err)
	assert.Contains(t, out, "ARTÍCULOS LEGALES RELEVANTES (resumen):")

	out, err = run(t, "search", "--dir", dir, "--context", "full", "velocidad")
	require.NoError(t, err)
	assert.Contains(t, out, "COIPTR - Artículo 385: Exceso de velocidad")

	_, err = run(t, "search", "--dir", dir, "--context", "bogus", "velocidad")
	assert.Error(t, err)
}

func TestArticleCmd(t *testing.T) {
	dir := writeCorpus(t)

	out, err := run(t, "article", "--dir", dir, "coiptr", "385")
	require.NoError(t, err)
	assert.Contains(t, out, "COIPTR - Artículo 385: Exceso de velocidad")
	assert.Contains(t, out, "Será sancionado")

	_, err = run(t, "article", "--dir", dir, "COIPTR", "999")
	assert.Error(t, err)

	_, err = run(t, "article", "--dir", dir, "COIPTR", "abc")
	assert.Error(t, err)
}

func TestStatsCmd(t *testing.T) {
	dir := writeCorpus(t)

	out, err := run(t, "stats", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Articles:  2")
	assert.Contains(t, out, "COIPTR")
	assert.Contains(t, out, "Skipped (2):")
	assert.Contains(t, out, "Coip/indice.json: not found")
}
