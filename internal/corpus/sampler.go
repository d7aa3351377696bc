package corpus

import (
	"unicode/utf8"

	"github.com/aclements/go-rabin/rabin"
	"github.com/bits-and-blooms/bloom/v3"
)

// Sampler draws distinct patterns from a text. Pattern starts are content
// defined: a start is taken wherever the Rabin fingerprint of the preceding
// Window bytes has its low MaskBits bits clear, so the same text always yields
// the same patterns.
type Sampler struct {
	Length   int // Pattern length in characters
	Count    int // Upper bound on the number of patterns
	Window   int // Fingerprint window in bytes
	MaskBits int
}

// DefaultSampler draws up to 64 patterns of 12 characters.
func DefaultSampler() Sampler {
	return Sampler{Length: 12, Count: 64, Window: 16, MaskBits: 4}
}

// Sample returns at most s.Count patterns, each a substring of text of length
// s.Length. A Bloom filter drops repeats; a false positive only costs a
// candidate.
func (s Sampler) Sample(text []rune) [][]rune {
	if s.Length <= 0 || s.Count <= 0 || len(text) < s.Length {
		return nil
	}
	window := s.Window
	if window <= 0 {
		window = 16
	}
	mask := uint64(1)<<uint(s.MaskBits) - 1

	hasher := rabin.New(rabin.NewTable(rabin.Poly64, window))
	seen := bloom.NewWithEstimates(uint(s.Count)*4, 0.01)

	var (
		patterns [][]rune
		fed      int
		buf      [utf8.UTFMax]byte
	)
	for i := 0; i+s.Length < len(text) && len(patterns) < s.Count; i++ {
		n := utf8.EncodeRune(buf[:], text[i])
		hasher.Write(buf[:n])
		fed += n
		if fed < window || hasher.Sum64()&mask != 0 {
			continue
		}
		candidate := text[i+1 : i+1+s.Length]
		key := []byte(string(candidate))
		if seen.Test(key) {
			continue
		}
		seen.Add(key)
		patterns = append(patterns, append([]rune(nil), candidate...))
	}
	return patterns
}
