// File: internal/keyboard/layout.go
package keyboard

import (
	"math/rand"
	"unicode"
)

// qwertyNeighbors maps each lowercase letter to the keys physically adjacent
// to it on a QWERTY layout. The lists are hand-authored from key proximity
// (2-4 entries each), not derived from a distance metric. Neighbor lists may
// contain non-letter characters; those are legal substitution outputs.
var qwertyNeighbors = map[rune]string{
	'a': "sqwz", 'b': "vnhg", 'c': "xvdf", 'd': "sfer", 'e': "wrdf",
	'f': "dgrt", 'g': "fhty", 'h': "gjyu", 'i': "uokl", 'j': "hkui",
	'k': "jlio", 'l': "k;op", 'm': "n,jk", 'n': "bmhj", 'o': "ipkl",
	'p': "o[l;", 'q': "wa12", 'r': "etdf", 's': "adwe", 't': "ryfg",
	'u': "yihj", 'v': "cbfg", 'w': "qeas", 'x': "zcsd", 'y': "tugh",
	'z': "axsd",
}

// Layout models physical key proximity on a keyboard. It is immutable after
// construction and safe for concurrent reads.
type Layout struct {
	neighbors map[rune]string
}

// NewQwerty returns the standard QWERTY proximity layout.
func NewQwerty() *Layout {
	return &Layout{neighbors: qwertyNeighbors}
}

// Nearby returns a plausible mis-typed character for c: one of c's physical
// neighbors chosen uniformly with rng, with c's original case reapplied.
// Characters without a table entry (digits, punctuation, anything
// non-alphabetic) are returned unchanged; there is no error path.
func (l *Layout) Nearby(rng *rand.Rand, c rune) rune {
	neighbors, ok := l.neighbors[unicode.ToLower(c)]
	if !ok || len(neighbors) == 0 {
		return c
	}
	picked := rune(neighbors[rng.Intn(len(neighbors))])
	if unicode.IsUpper(c) {
		return unicode.ToUpper(picked)
	}
	return picked
}

// Neighbors returns the raw neighbor list for c (case-folded), or the empty
// string when c has no table entry.
func (l *Layout) Neighbors(c rune) string {
	return l.neighbors[unicode.ToLower(c)]
}
