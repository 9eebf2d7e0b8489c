package legal

import "strings"

// searchPrefixRunes bounds how much of an article body is indexed.
const searchPrefixRunes = 500

type Article struct {
	Law     string `json:"law"`
	Number  int    `json:"number"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`

	searchText string
	titleWords map[string]struct{}
}

// NewArticle builds an article and its derived search representation.
func NewArticle(law string, number int, title, content string) Article {
	a := Article{
		Law:     law,
		Number:  number,
		Title:   title,
		Content: content,
	}
	a.searchText = Normalize(title + " " + prefix(content, searchPrefixRunes))

	a.titleWords = make(map[string]struct{})
	for _, w := range strings.Fields(Normalize(title)) {
		a.titleWords[w] = struct{}{}
	}
	return a
}

// SearchText returns the normalized text used for matching.
func (a Article) SearchText() string {
	return a.searchText
}

func (a Article) hasTitleWord(w string) bool {
	_, ok := a.titleWords[w]
	return ok
}

type ScoredArticle struct {
	Article Article `json:"article"`
	Score   int     `json:"score"`
}

// Corpus is the ordered, read-only set of loaded articles.
type Corpus struct {
	articles []Article
}

func NewCorpus(articles ...Article) *Corpus {
	cp := make([]Article, len(articles))
	copy(cp, articles)
	return &Corpus{articles: cp}
}

func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.articles)
}

// Articles returns a copy of the corpus in load order.
func (c *Corpus) Articles() []Article {
	if c == nil {
		return nil
	}
	cp := make([]Article, len(c.articles))
	copy(cp, c.articles)
	return cp
}

// Article returns the first article loaded for law (case-insensitive) and number.
func (c *Corpus) Article(law string, number int) (Article, bool) {
	if c == nil {
		return Article{}, false
	}
	for _, a := range c.articles {
		if a.Number == number && strings.EqualFold(a.Law, law) {
			return a, true
		}
	}
	return Article{}, false
}

// Laws lists the distinct law names with their article counts, in load order.
func (c *Corpus) Laws() []LawCount {
	if c == nil {
		return nil
	}
	var out []LawCount
	idx := make(map[string]int)
	for _, a := range c.articles {
		i, ok := idx[a.Law]
		if !ok {
			i = len(out)
			idx[a.Law] = i
			out = append(out, LawCount{Law: a.Law})
		}
		out[i].Articles++
	}
	return out
}

type LawCount struct {
	Law      string `json:"law"`
	Articles int    `json:"articles"`
}

func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
