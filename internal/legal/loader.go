package legal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DescriptorFile is the per-group index listing a law's articles.
const DescriptorFile = "indice.json"

// DefaultGroups are the law folders shipped with the assistant.
var DefaultGroups = []string{"Coip", "COIPTR", "LOTAIP"}

type descriptor struct {
	Law      string       `json:"nombreLey"`
	Total    int          `json:"totalArticulos"`
	Articles []articleRef `json:"articulos"`
}

type articleRef struct {
	Number int    `json:"numero"`
	Title  string `json:"titulo"`
	File   string `json:"archivo"`
}

// Diagnostic records a group or article skipped while loading.
type Diagnostic struct {
	Group  string `json:"group"`
	File   string `json:"file,omitempty"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	if d.File == "" {
		return fmt.Sprintf("%s: %s", d.Group, d.Reason)
	}
	return fmt.Sprintf("%s/%s: %s", d.Group, d.File, d.Reason)
}

// Load reads every group under baseDir. Missing or malformed groups and
// unreadable article files are skipped and reported; Load itself never fails.
func Load(baseDir string, groups []string) (*Corpus, []Diagnostic) {
	var (
		articles []Article
		diags    []Diagnostic
	)

	for _, group := range groups {
		groupDir := filepath.Join(baseDir, group)

		data, err := os.ReadFile(filepath.Join(groupDir, DescriptorFile))
		if err != nil {
			diags = append(diags, Diagnostic{Group: group, File: DescriptorFile, Reason: readReason(err)})
			continue
		}

		var desc descriptor
		if err := json.Unmarshal(data, &desc); err != nil {
			diags = append(diags, Diagnostic{Group: group, File: DescriptorFile, Reason: fmt.Sprintf("malformed descriptor: %v", err)})
			continue
		}

		law := strings.TrimSpace(desc.Law)
		if law == "" {
			law = group
		}

		for _, ref := range desc.Articles {
			if ref.File == "" {
				diags = append(diags, Diagnostic{Group: group, Reason: fmt.Sprintf("article %d has no file", ref.Number)})
				continue
			}
			content, err := os.ReadFile(filepath.Join(groupDir, ref.File))
			if err != nil {
				diags = append(diags, Diagnostic{Group: group, File: ref.File, Reason: readReason(err)})
				continue
			}
			articles = append(articles, NewArticle(law, ref.Number, ref.Title, strings.TrimSpace(string(content))))
		}
	}

	return &Corpus{articles: articles}, diags
}

func readReason(err error) string {
	if os.IsNotExist(err) {
		return "not found"
	}
	return err.Error()
}
