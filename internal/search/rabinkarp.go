package search

import "github.com/Anish-Chanda/substring-search/internal/rabin"

// RabinKarp searches with base 256 and modulus 101.
func RabinKarp[T Symbol](haystack, pattern []T) (int, error) {
	return RabinKarpWith(haystack, pattern, rabin.DefaultParams())
}

// RabinKarpWith returns the index of the first occurrence of pattern in
// haystack using the rolling hash described by p. Hash equality only nominates
// a window; a symbol-by-symbol comparison decides.
func RabinKarpWith[T Symbol](haystack, pattern []T, p rabin.Params) (int, error) {
	if err := checkPattern(pattern); err != nil {
		return NotFound, err
	}
	if err := p.Validate(); err != nil {
		return NotFound, err
	}
	n, m := len(haystack), len(pattern)
	if m > n {
		return NotFound, nil
	}

	want := rabin.Hash(pattern, p)
	window := rabin.NewRolling(haystack[:m], p)
	for i := 0; i <= n-m; i++ {
		if window.Sum() == want && equal(haystack[i:i+m], pattern) {
			return i, nil
		}
		if i < n-m {
			window.Roll(int64(haystack[i]), int64(haystack[i+m]))
		}
	}
	return NotFound, nil
}

func equal[T Symbol](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
