package search

// ShiftTable holds the per-symbol skip distances of a pattern.
type ShiftTable[T Symbol] struct {
	skips map[T]int
	m     int
}

// NewShiftTable builds the table for pattern. Every symbol of pattern[:M-1] maps
// to M-1-i for its rightmost index i; the last symbol maps to M only when it
// does not occur earlier.
func NewShiftTable[T Symbol](pattern []T) (*ShiftTable[T], error) {
	if err := checkPattern(pattern); err != nil {
		return nil, err
	}
	m := len(pattern)
	skips := make(map[T]int, m)
	for i, c := range pattern[:m-1] {
		skips[c] = m - 1 - i
	}
	if _, ok := skips[pattern[m-1]]; !ok {
		skips[pattern[m-1]] = m
	}
	return &ShiftTable[T]{skips: skips, m: m}, nil
}

// Skip returns the shift for c, defaulting to the pattern length for symbols
// absent from the pattern.
func (t *ShiftTable[T]) Skip(c T) int {
	if s, ok := t.skips[c]; ok {
		return s
	}
	return t.m
}

// Len returns the length of the pattern the table was built for.
func (t *ShiftTable[T]) Len() int {
	return t.m
}

// BoyerMoore returns the index of the first occurrence of pattern in haystack.
// The shift is always keyed by the haystack symbol under the pattern's last
// position, not by the mismatching symbol.
func BoyerMoore[T Symbol](haystack, pattern []T) (int, error) {
	table, err := NewShiftTable(pattern)
	if err != nil {
		return NotFound, err
	}
	n, m := len(haystack), len(pattern)
	for i := 0; i <= n-m; {
		j := m - 1
		for j >= 0 && haystack[i+j] == pattern[j] {
			j--
		}
		if j < 0 {
			return i, nil
		}
		i += table.Skip(haystack[i+m-1])
	}
	return NotFound, nil
}
