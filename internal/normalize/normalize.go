// Package normalize derives the stable lookup key used to unify course
// identities across curriculum, offering and difficulty tables whose
// catalog codes drift from year to year but whose display names are
// stable modulo case, accents and punctuation.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Key case-folds s, strips diacritical marks, keeps only letters, digits
// and single spaces, and trims the result. It is idempotent and pure:
// Key(Key(s)) == Key(s) for any s.
func Key(s string) string {
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingSpace := false

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark from the NFD decomposition
		}
		r = unicode.ToLower(r)
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		default:
			// punctuation and everything else is dropped, not turned into a space
		}
	}

	return strings.TrimSpace(b.String())
}
