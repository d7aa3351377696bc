package corpus_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/text/encoding/charmap"

	"github.com/Anish-Chanda/substring-search/internal/corpus"
)

const article = "Пошук – поширена дія, яка виконується в бізнес-додатках."

func cp1251(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.Windows1251.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode cp1251: %v", err)
	}
	return b
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name  string
		label string
		data  func(t *testing.T) []byte
	}{
		{"cp1251", "cp1251", func(t *testing.T) []byte { return cp1251(t, article) }},
		{"windows-1251", "windows-1251", func(t *testing.T) []byte { return cp1251(t, article) }},
		{"utf-8", "utf-8", func(*testing.T) []byte { return []byte(article) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := corpus.Decode(bytes.NewReader(tc.data(t)), tc.label)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if string(got) != article {
				t.Errorf("Decode = %q; want %q", string(got), article)
			}
		})
	}
}

func TestDecode_UnknownEncoding(t *testing.T) {
	_, err := corpus.Decode(strings.NewReader("x"), "klingon-8")
	if !errors.Is(err, corpus.ErrUnknownEncoding) {
		t.Fatalf("expected ErrUnknownEncoding, got %v", err)
	}
	if _, err := corpus.NewLoader(corpus.FS(fstest.MapFS{}), "klingon-8", 1); !errors.Is(err, corpus.ErrUnknownEncoding) {
		t.Fatalf("NewLoader: expected ErrUnknownEncoding, got %v", err)
	}
}

// countingSource counts Open calls on top of an in-memory file system.
type countingSource struct {
	corpus.Dir
	opens int
}

func (c *countingSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	c.opens++
	return c.Dir.Open(ctx, name)
}

func TestLoader_CachesDecodedText(t *testing.T) {
	src := &countingSource{Dir: corpus.FS(fstest.MapFS{
		"article_1.txt": {Data: cp1251(t, article)},
	})}
	loader, err := corpus.NewLoader(src, "cp1251", 2)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		text, err := loader.Load(ctx, "article_1.txt")
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if string(text) != article {
			t.Fatalf("Load = %q; want %q", string(text), article)
		}
	}
	if src.opens != 1 {
		t.Errorf("expected 1 open, got %d", src.opens)
	}

	if _, err := loader.Load(ctx, "missing.txt"); err == nil {
		t.Error("expected error for missing text")
	}
}

func TestSampler(t *testing.T) {
	text := []rune(strings.Repeat(article+" Було проведено серію експериментів. ", 20) +
		"Some random text, that is not to be found in any text.")
	s := corpus.Sampler{Length: 8, Count: 10, Window: 8, MaskBits: 2}

	patterns := s.Sample(text)
	if len(patterns) == 0 {
		t.Fatal("expected at least one pattern")
	}
	if len(patterns) > s.Count {
		t.Fatalf("got %d patterns, want at most %d", len(patterns), s.Count)
	}
	seen := make(map[string]bool)
	for _, p := range patterns {
		if len(p) != s.Length {
			t.Errorf("pattern %q has length %d; want %d", string(p), len(p), s.Length)
		}
		if !strings.Contains(string(text), string(p)) {
			t.Errorf("pattern %q does not occur in text", string(p))
		}
		if seen[string(p)] {
			t.Errorf("duplicate pattern %q", string(p))
		}
		seen[string(p)] = true
	}

	again := s.Sample(text)
	if len(again) != len(patterns) {
		t.Fatalf("second sample has %d patterns; first had %d", len(again), len(patterns))
	}
	for i := range again {
		if string(again[i]) != string(patterns[i]) {
			t.Errorf("sample %d differs: %q vs %q", i, string(again[i]), string(patterns[i]))
		}
	}
}

func TestSampler_ShortText(t *testing.T) {
	if got := corpus.DefaultSampler().Sample([]rune("short")); got != nil {
		t.Errorf("expected no patterns, got %d", len(got))
	}
}
