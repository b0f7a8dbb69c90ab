package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes characters and drops combining marks, turning
// "dirección" into "direccion".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// leadingArticles are stripped from the front of titles before comparison.
// Covers the source languages the catalog investigation handles today.
var leadingArticles = map[string]struct{}{
	"the": {}, "a": {}, "an": {},
	"el": {}, "la": {}, "los": {}, "las": {}, "un": {}, "una": {},
	"le": {}, "les": {}, "une": {},
}

// Fold lowercases, strips diacritics, removes punctuation, and collapses
// whitespace.
func Fold(input string) string {
	folded, _, err := transform.String(foldTransformer, input)
	if err != nil {
		folded = input
	}
	folded = strings.ToLower(folded)

	var builder strings.Builder
	builder.Grow(len(folded))
	prevSpace := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			builder.WriteRune(r)
			prevSpace = false
		default:
			if !prevSpace {
				builder.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimSpace(builder.String())
}

// Title folds the title and strips leading articles ("the", "el", "la", ...).
// Articles are stripped to a fixpoint so the result is stable under repeated
// normalization; a title consisting only of articles is left folded as-is.
func Title(input string) string {
	folded := Fold(input)
	for {
		first, rest, found := strings.Cut(folded, " ")
		if !found {
			return folded
		}
		if _, isArticle := leadingArticles[first]; !isArticle {
			return folded
		}
		folded = rest
	}
}

// Author folds an author name and rewrites "Last, First" to "First Last".
// Only the first comma is treated as an inversion marker.
func Author(input string) string {
	if last, first, found := strings.Cut(input, ","); found {
		input = strings.TrimSpace(first) + " " + strings.TrimSpace(last)
	}
	return Fold(input)
}

// Surname returns the last token of a normalized author name, or "".
func Surname(author string) string {
	normalized := Author(author)
	if normalized == "" {
		return ""
	}
	parts := strings.Fields(normalized)
	return parts[len(parts)-1]
}
