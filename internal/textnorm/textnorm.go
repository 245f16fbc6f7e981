// Package textnorm folds user-facing names (move names, guesses) into the
// lower-case, hyphenated, accent-free form PokeAPI uses for resource names.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dropped covers the punctuation that never appears in resource names, such
// as the period of "Mr. Mime" or the apostrophe of "Farfetch'd".
var dropped = runes.Predicate(func(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Po, unicode.Pi, unicode.Pf)
})

// Normalize returns the canonical form of s: accents and punctuation
// stripped, case folded, surrounding space trimmed, and runs of spaces,
// underscores or hyphens collapsed into a single hyphen.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(dropped), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	folded := cases.Fold().String(stripped)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.TrimSpace(folded) {
		if r == ' ' || r == '_' || r == '-' || unicode.IsSpace(r) {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}

// Equal reports whether a and b normalize to the same non-empty name.
func Equal(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}
