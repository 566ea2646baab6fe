package stringutil

import "unicode"

// EqualRuneFold reports whether r1 and r2 are equal under Unicode simple case
// folding, the same relation strings.EqualFold applies per rune. Used for
// case-insensitive matching of single character wildcards, where comparison
// happens one decoded rune at a time.
func EqualRuneFold(r1, r2 rune) bool {
	if r1 == r2 {
		return true
	}
	// SimpleFold cycles through the fold orbit of r1 and eventually returns
	// to r1 itself.
	for r := unicode.SimpleFold(r1); r != r1; r = unicode.SimpleFold(r) {
		if r == r2 {
			return true
		}
	}
	return false
}
