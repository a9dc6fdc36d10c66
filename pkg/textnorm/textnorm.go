// Package textnorm normaliza texto para búsquedas por nombre insensibles a tildes y mayúsculas.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas, sin diacríticos y con espacios colapsados.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(Clean(out))
}

// Clean recorta y colapsa espacios internos.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Contains indica si needle aparece en haystack ignorando tildes y mayúsculas.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
