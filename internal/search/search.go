// Package search implements three exact-match substring search engines that
// share one contract: given a haystack and a non-empty pattern they return the
// index of the leftmost occurrence, or NotFound.
//
// Boyer-Moore (Horspool variant):
// Compares right-to-left and, on a mismatch, shifts by a distance looked up for
// the haystack symbol aligned with the pattern's last position. Sublinear on
// long patterns; a one-symbol pattern degrades to a linear scan.
//
// Knuth-Morris-Pratt:
// Pre-analyzes the pattern into a prefix table so that symbols already matched
// are never compared again. O(N+M) for every input.
//
// Rabin-Karp:
// Compares a rolling polynomial hash of each window with the pattern's hash and
// confirms hash hits symbol by symbol, so collisions never become matches.
//
// All engines are pure: every table and hash lives for one call only, so they
// are safe for concurrent use.
package search

import "errors"

// NotFound is the index reported when the pattern does not occur.
const NotFound = -1

var (
	// ErrInvalidPattern is returned for an empty pattern, before any table is built.
	ErrInvalidPattern = errors.New("search: pattern must not be empty")
	// ErrUnknownEngine is returned by Lookup for names outside the registry.
	ErrUnknownEngine = errors.New("search: unknown engine")
)

// Symbol is the element type of haystacks and patterns: bytes for a byte
// search, runes for a character search.
type Symbol interface {
	~byte | ~rune
}

func checkPattern[T Symbol](pattern []T) error {
	if len(pattern) == 0 {
		return ErrInvalidPattern
	}
	return nil
}

// Runes converts s to the rune form used by the named engines.
func Runes(s string) []rune {
	return []rune(s)
}
