package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ordinalReplacer = strings.NewReplacer("º", "o", "ª", "a", "°", "o")

// Fold lowercases s and strips diacritics ("Março" -> "marco", "1º" -> "1o").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, ordinalReplacer.Replace(s))
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Tokens splits s on anything that is not a letter or digit. Tokens keep
// their original case and accents; use Fold for comparisons.
func Tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TokenSpans returns the byte range of each token Tokens would return.
func TokenSpans(s string) [][2]int {
	var spans [][2]int
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			spans = append(spans, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, [2]int{start, len(s)})
	}
	return spans
}

// Blank replaces the given byte ranges of s with spaces.
func Blank(s string, spans [][2]int) string {
	b := []byte(s)
	for _, sp := range spans {
		for i := sp[0]; i < sp[1] && i < len(b); i++ {
			b[i] = ' '
		}
	}
	return string(b)
}

// FoldedTokens is Tokens over Fold(s).
func FoldedTokens(s string) []string {
	return Tokens(Fold(s))
}

// ContainsTerm reports whether term appears in text as whole words. Both are
// folded; term may span several words ("salario do").
func ContainsTerm(text, term string) bool {
	hay := " " + strings.Join(FoldedTokens(text), " ") + " "
	needle := strings.Join(FoldedTokens(term), " ")
	if needle == "" {
		return false
	}
	return strings.Contains(hay, " "+needle+" ")
}
