package search

// PrefixTable returns the longest-proper-prefix-suffix array of pattern:
// lps[i] is the length of the longest proper prefix of pattern[:i+1] that is
// also its suffix.
func PrefixTable[T Symbol](pattern []T) []int {
	lps := make([]int, len(pattern))
	length := 0
	for i := 1; i < len(pattern); {
		switch {
		case pattern[i] == pattern[length]:
			length++
			lps[i] = length
			i++
		case length != 0:
			length = lps[length-1]
		default:
			lps[i] = 0
			i++
		}
	}
	return lps
}

// KMP returns the index of the first occurrence of pattern in haystack.
func KMP[T Symbol](haystack, pattern []T) (int, error) {
	if err := checkPattern(pattern); err != nil {
		return NotFound, err
	}
	lps := PrefixTable(pattern)
	n, m := len(haystack), len(pattern)

	i, j := 0, 0
	for i < n {
		switch {
		case pattern[j] == haystack[i]:
			i++
			j++
		case j != 0:
			j = lps[j-1]
		default:
			i++
		}
		if j == m {
			return i - j, nil
		}
	}
	return NotFound, nil
}
