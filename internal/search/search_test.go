package search_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Anish-Chanda/substring-search/internal/rabin"
	"github.com/Anish-Chanda/substring-search/internal/search"
)

type byteEngine struct {
	name  string
	index func(haystack, pattern []byte) (int, error)
}

var byteEngines = []byteEngine{
	{"boyer-moore", search.BoyerMoore[byte]},
	{"kmp", search.KMP[byte]},
	{"rabin-karp", search.RabinKarp[byte]},
	// Modulus 1 makes every window collide with the pattern.
	{"rabin-karp/mod1", func(h, p []byte) (int, error) {
		return search.RabinKarpWith(h, p, rabin.Params{Base: 256, Modulus: 1})
	}},
	{"rabin-karp/large", func(h, p []byte) (int, error) {
		return search.RabinKarpWith(h, p, rabin.Params{Base: 31, Modulus: 1_000_000_007})
	}},
}

// naive is the reference: the leftmost i with haystack[i:i+M] == pattern.
func naive(haystack, pattern []byte) int {
	return strings.Index(string(haystack), string(pattern))
}

func TestEngines_Scenarios(t *testing.T) {
	testCases := []struct {
		name     string
		haystack string
		pattern  string
		want     int
	}{
		{"scenario 1", "ABABDABACDABABCABAB", "ABABCABAB", 10},
		{"scenario 2", "AAAAAAAAAA", "AAAA", 0},
		{"scenario 3", "abcxabcdabxabcdabcdabcy", "abcdabcy", 15},
		{"at start", "needle in a haystack", "needle", 0},
		{"at end", "a haystack with a needle", "needle", 18},
		{"whole haystack", "exact", "exact", 0},
		{"single symbol", "xxxxy", "y", 4},
		{"absent", "the quick brown fox", "cat", search.NotFound},
		{"pattern longer", "abc", "abcd", search.NotFound},
		{"empty haystack", "", "a", search.NotFound},
		{"last symbol repeats", "abab abba", "abba", 5},
		{"overlapping prefix", "aabaabaaab", "aaab", 6},
	}
	for _, tc := range testCases {
		for _, e := range byteEngines {
			t.Run(tc.name+"/"+e.name, func(t *testing.T) {
				got, err := e.index([]byte(tc.haystack), []byte(tc.pattern))
				if err != nil {
					t.Fatalf("index error: %v", err)
				}
				if got != tc.want {
					t.Errorf("index(%q, %q) = %d; want %d", tc.haystack, tc.pattern, got, tc.want)
				}
			})
		}
	}
}

func TestEngines_EmptyPattern(t *testing.T) {
	for _, e := range byteEngines {
		got, err := e.index([]byte("anything"), nil)
		if !errors.Is(err, search.ErrInvalidPattern) {
			t.Errorf("%s: error = %v; want ErrInvalidPattern", e.name, err)
		}
		if got != search.NotFound {
			t.Errorf("%s: index = %d; want NotFound", e.name, got)
		}
	}
}

func TestEngines_AgreeWithReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randString := func(n int, alphabet string) []byte {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return b
	}
	for iter := 0; iter < 2000; iter++ {
		alphabet := "ab"
		if iter%3 == 0 {
			alphabet = "abcd"
		}
		haystack := randString(rng.Intn(40), alphabet)
		pattern := randString(1+rng.Intn(6), alphabet)
		if iter%4 == 0 && len(haystack) > 0 {
			// Plant an occurrence taken from the haystack itself.
			start := rng.Intn(len(haystack))
			end := start + 1 + rng.Intn(len(haystack)-start)
			pattern = append([]byte(nil), haystack[start:end]...)
		}

		want := naive(haystack, pattern)
		for _, e := range byteEngines {
			got, err := e.index(haystack, pattern)
			if err != nil {
				t.Fatalf("%s(%q, %q) error: %v", e.name, haystack, pattern, err)
			}
			if got != want {
				t.Fatalf("%s(%q, %q) = %d; want %d", e.name, haystack, pattern, got, want)
			}
		}
	}
}

func TestEngines_Idempotent(t *testing.T) {
	haystack := []byte("ABABDABACDABABCABAB")
	pattern := []byte("ABABCABAB")
	for _, e := range byteEngines {
		first, _ := e.index(haystack, pattern)
		for i := 0; i < 5; i++ {
			if got, _ := e.index(haystack, pattern); got != first {
				t.Errorf("%s: call %d = %d; first call = %d", e.name, i, got, first)
			}
		}
	}
}

func TestEngines_Runes(t *testing.T) {
	text := search.Runes("Було проведено серію експериментів для порівняння ефективності")
	pattern := search.Runes("експериментів")
	want := 21
	for _, e := range search.Engines(rabin.DefaultParams()) {
		got, err := e.Index(text, pattern)
		if err != nil {
			t.Fatalf("%s error: %v", e, err)
		}
		if got != want {
			t.Errorf("%s = %d; want %d", e, got, want)
		}
	}
}

func TestRabinKarp_RejectsCollision(t *testing.T) {
	p := rabin.DefaultParams()
	pattern := []byte("ab")
	decoy := []byte("b,")
	if rabin.Hash(pattern, p) != rabin.Hash(decoy, p) {
		t.Fatalf("test setup: %q and %q must collide under %+v", pattern, decoy, p)
	}
	haystack := append(append([]byte(nil), decoy...), []byte("xab")...)

	got, err := search.RabinKarp(haystack, pattern)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("RabinKarp(%q, %q) = %d; want 3", haystack, pattern, got)
	}

	got, err = search.RabinKarp(decoy, pattern)
	if err != nil {
		t.Fatal(err)
	}
	if got != search.NotFound {
		t.Errorf("collision reported as match at %d", got)
	}
}

func TestRabinKarp_InvalidParams(t *testing.T) {
	_, err := search.RabinKarpWith([]byte("abc"), []byte("b"), rabin.Params{Base: 0, Modulus: 101})
	if !errors.Is(err, rabin.ErrInvalidParams) {
		t.Errorf("error = %v; want ErrInvalidParams", err)
	}
	// An empty pattern is reported before the parameters are looked at.
	_, err = search.RabinKarpWith([]byte("abc"), []byte{}, rabin.Params{})
	if !errors.Is(err, search.ErrInvalidPattern) {
		t.Errorf("error = %v; want ErrInvalidPattern", err)
	}
}

func TestShiftTable(t *testing.T) {
	testCases := []struct {
		pattern string
		skips   map[byte]int
	}{
		{"ABABCABAB", map[byte]int{'A': 1, 'B': 2, 'C': 4, 'Z': 9}},
		{"abcd", map[byte]int{'a': 3, 'b': 2, 'c': 1, 'd': 4, 'x': 4}},
		{"x", map[byte]int{'x': 1, 'y': 1}},
		{"aaaa", map[byte]int{'a': 1, 'b': 4}},
	}
	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			table, err := search.NewShiftTable([]byte(tc.pattern))
			if err != nil {
				t.Fatal(err)
			}
			if table.Len() != len(tc.pattern) {
				t.Errorf("Len() = %d; want %d", table.Len(), len(tc.pattern))
			}
			for c, want := range tc.skips {
				if got := table.Skip(c); got != want {
					t.Errorf("Skip(%q) = %d; want %d", c, got, want)
				}
			}
		})
	}

	if _, err := search.NewShiftTable([]byte{}); !errors.Is(err, search.ErrInvalidPattern) {
		t.Errorf("NewShiftTable(empty) error = %v; want ErrInvalidPattern", err)
	}
}

func TestPrefixTable(t *testing.T) {
	testCases := []struct {
		pattern string
		want    []int
	}{
		{"ABABCABAB", []int{0, 0, 1, 2, 0, 1, 2, 3, 4}},
		{"AAAA", []int{0, 1, 2, 3}},
		{"abcdabcy", []int{0, 0, 0, 0, 1, 2, 3, 0}},
		{"aabaaab", []int{0, 1, 0, 1, 2, 2, 3}},
		{"a", []int{0}},
	}
	for _, tc := range testCases {
		got := search.PrefixTable([]byte(tc.pattern))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("PrefixTable(%q) mismatch (-want +got):\n%s", tc.pattern, diff)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, name := range search.Names() {
		e, err := search.Lookup(name, rabin.DefaultParams())
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", name, err)
		}
		if e.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, e.Name)
		}
	}
	if _, err := search.Lookup("sunday", rabin.DefaultParams()); !errors.Is(err, search.ErrUnknownEngine) {
		t.Errorf("Lookup(sunday) error = %v; want ErrUnknownEngine", err)
	}
}
