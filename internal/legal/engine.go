package legal

import "sort"

// DefaultLimit is the number of articles returned when the caller has no preference.
const DefaultLimit = 5

// Engine ranks corpus articles against free-text questions. It never mutates
// the corpus, so one Engine serves any number of concurrent queries.
type Engine struct {
	corpus *Corpus
	scorer *Scorer
}

func NewEngine(corpus *Corpus, scorer *Scorer) *Engine {
	if corpus == nil {
		corpus = NewCorpus()
	}
	if scorer == nil {
		scorer = DefaultScorer()
	}
	return &Engine{corpus: corpus, scorer: scorer}
}

// Rank scores every article, drops non-positive scores and returns at most
// limit results by descending score. Ties keep corpus order.
func (e *Engine) Rank(query string, limit int) []ScoredArticle {
	if limit <= 0 {
		return nil
	}
	q := e.scorer.Parse(query)

	var scored []ScoredArticle
	for i := range e.corpus.articles {
		a := &e.corpus.articles[i]
		if s := e.scorer.Score(q, a); s > 0 {
			scored = append(scored, ScoredArticle{Article: *a, Score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Search returns the most relevant articles for query.
func (e *Engine) Search(query string, limit int) []Article {
	ranked := e.Rank(query, limit)
	if len(ranked) == 0 {
		return nil
	}
	out := make([]Article, len(ranked))
	for i, r := range ranked {
		out[i] = r.Article
	}
	return out
}

func (e *Engine) Article(law string, number int) (Article, bool) {
	return e.corpus.Article(law, number)
}

func (e *Engine) Total() int {
	return e.corpus.Len()
}

func (e *Engine) Corpus() *Corpus {
	return e.corpus
}
