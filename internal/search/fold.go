package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldQuery lowercases the query and strips diacritics so "café" matches
// "cafe". Decompose, drop combining marks, recompose.
func foldQuery(q string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)

	folded, _, err := transform.String(t, q)
	if err != nil {
		folded = q
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
