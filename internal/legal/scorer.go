package legal

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	TitleMatchScore   = 15
	BodyMatchScore    = 2
	SynonymMatchScore = 8
	NumberMatchScore  = 100

	minTokenLen = 3
)

// DefaultStopWords are Spanish function words that never score on their own.
var DefaultStopWords = []string{
	"el", "la", "lo", "los", "las", "un", "una", "unos", "unas",
	"de", "del", "al", "a", "en", "por", "para", "con", "sin", "sobre", "entre", "hasta", "desde",
	"que", "y", "o", "u", "e", "ni", "pero", "mas", "muy", "como", "cuando", "donde",
	"se", "no", "su", "sus", "me", "mi", "tu", "yo", "le", "les",
	"ser", "estar", "tener", "es", "son", "este", "esta", "eso", "esto",
}

// DefaultSynonyms maps canonical domain terms to the variants rewarded when
// the canonical term appears in a query.
var DefaultSynonyms = map[string][]string{
	"velocidad":  {"velocidad", "rapidez", "limite de velocidad", "exceso"},
	"vehiculo":   {"vehiculo", "auto", "carro", "automotor", "automovil"},
	"transito":   {"transito", "trafico", "circulacion", "movilidad"},
	"multa":      {"multa", "sancion", "remuneracion basica", "salario basico"},
	"infraccion": {"infraccion", "violacion", "contravencion"},
	"conducir":   {"conducir", "manejar", "conductor", "conduccion"},
	"licencia":   {"licencia", "permiso de conducir", "licencia de conducir"},
	"embriaguez": {"embriaguez", "alcohol", "ebrio", "sustancias estupefacientes"},
	"estacionar": {"estacionar", "parquear", "estacionamiento", "aparcar"},
	"semaforo":   {"semaforo", "luz roja", "senal de pare"},
	"peaton":     {"peaton", "peatonal", "paso cebra"},
	"accidente":  {"accidente", "siniestro", "choque", "colision"},
	"puntos":     {"puntos", "puntaje", "reduccion de puntos"},
}

var articleNumberRe = regexp.MustCompile(`\b(?:articulos?|art)\s*(\d+)`)

// Query is a parsed, normalized question.
type Query struct {
	Normalized string
	Tokens     []string
	// Number is the article number named in the query, or 0.
	Number int
}

// Scorer computes additive keyword relevance. It holds configuration only and
// is safe for concurrent use.
type Scorer struct {
	stopWords map[string]struct{}
	synonyms  map[string][]string
}

// NewScorer normalizes the given stop words and synonym table. A nil argument
// falls back to the defaults.
func NewScorer(stopWords []string, synonyms map[string][]string) *Scorer {
	if stopWords == nil {
		stopWords = DefaultStopWords
	}
	if synonyms == nil {
		synonyms = DefaultSynonyms
	}

	s := &Scorer{
		stopWords: make(map[string]struct{}, len(stopWords)),
		synonyms:  make(map[string][]string, len(synonyms)),
	}
	for _, w := range stopWords {
		if n := Normalize(w); n != "" {
			s.stopWords[n] = struct{}{}
		}
	}
	for term, variants := range synonyms {
		key := Normalize(term)
		if key == "" {
			continue
		}
		for _, v := range variants {
			if n := Normalize(v); n != "" {
				s.synonyms[key] = append(s.synonyms[key], n)
			}
		}
	}
	return s
}

func DefaultScorer() *Scorer {
	return NewScorer(nil, nil)
}

func (s *Scorer) IsStopWord(w string) bool {
	_, ok := s.stopWords[w]
	return ok
}

func (s *Scorer) Parse(text string) Query {
	q := Query{Normalized: Normalize(text)}

	for _, w := range strings.Split(q.Normalized, " ") {
		if len(w) < minTokenLen || s.IsStopWord(w) {
			continue
		}
		q.Tokens = append(q.Tokens, w)
	}

	if m := articleNumberRe.FindStringSubmatch(q.Normalized); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			q.Number = n
		}
	}
	return q
}

// Score returns the relevance of a to q. Zero means not relevant.
func (s *Scorer) Score(q Query, a *Article) int {
	score := 0
	text := a.searchText

	for _, tok := range q.Tokens {
		if a.hasTitleWord(tok) {
			score += TitleMatchScore
		}
		if strings.Contains(text, tok) {
			score += BodyMatchScore
		}
	}

	if q.Normalized != "" {
		for term, variants := range s.synonyms {
			if !strings.Contains(q.Normalized, term) {
				continue
			}
			for _, v := range variants {
				if strings.Contains(text, v) {
					score += SynonymMatchScore
				}
			}
		}
	}

	if q.Number > 0 && a.Number == q.Number {
		score += NumberMatchScore
	}
	return score
}
