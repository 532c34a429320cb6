package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldAccents lowercases s and strips combining marks ("Pondération" -> "ponderation").
func FoldAccents(s string) string {
	folded, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
