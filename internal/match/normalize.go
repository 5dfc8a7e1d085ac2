package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// synonymFolds canonicalizes domain phrasing so later substring checks line
// up. Applied longest-variant-first; the replacer does a single
// non-overlapping pass so folded output is not re-folded.
var synonymFolds = strings.NewReplacer(
	"fixing income", "fixed income",
	"mergers and acquisitions", "m&a",
	"mergers & acquisitions", "m&a",
	"m and a", "m&a",
	"m & a", "m&a",
	"investment banking division", "investment banking ib",
	"investment banking", "investment banking ib",
	"ibd", "investment banking ib",
)

// Normalize canonicalizes free text for matching: case fold, diacritic strip,
// synonym fold, punctuation strip ('&' survives for the m&a token), whitespace
// collapse. Total on any input.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}
	s = synonymFolds.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '&':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormTokens splits normalized text into tokens.
func NormTokens(s string) []string {
	return strings.Fields(Normalize(s))
}
