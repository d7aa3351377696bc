package bench

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Anish-Chanda/substring-search/internal/search"
)

// Verify runs every engine on every pattern concurrently and checks each answer
// against a naive scan, which also pins the leftmost-match property. The
// engines share haystack; none of them writes to it.
func Verify(ctx context.Context, engines []search.Engine, haystack []rune, patterns [][]rune, workers int) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for n, pattern := range patterns {
		n, pattern := n, pattern
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			want := naiveIndex(haystack, pattern)
			outcomes := make([]Outcome, 0, len(engines))
			ok := true
			for _, e := range engines {
				idx, err := e.Index(haystack, pattern)
				if err != nil {
					return fmt.Errorf("%s on pattern %d: %w", e.Name, n, err)
				}
				outcomes = append(outcomes, Outcome{Engine: e.Name, Index: idx})
				ok = ok && idx == want
			}
			if !ok {
				return &DisagreementError{Case: fmt.Sprintf("pattern %d %q", n, string(pattern)), Want: want, Outcomes: outcomes}
			}
			return nil
		})
	}
	return g.Wait()
}

func naiveIndex(haystack, pattern []rune) int {
	if len(pattern) == 0 {
		return search.NotFound
	}
outer:
	for i := 0; i+len(pattern) <= len(haystack); i++ {
		for j := range pattern {
			if haystack[i+j] != pattern[j] {
				continue outer
			}
		}
		return i
	}
	return search.NotFound
}
