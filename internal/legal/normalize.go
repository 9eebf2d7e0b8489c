package legal

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics is the Combining Diacritical Marks block (U+0300–U+036F).
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, strips accents and punctuation and collapses
// whitespace. Queries and indexed articles go through the same function.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ToLower(text)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacritics)))
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	s = nonWordRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
