package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Anish-Chanda/substring-search/internal/bench"
	"github.com/Anish-Chanda/substring-search/internal/corpus"
	"github.com/Anish-Chanda/substring-search/internal/search"
)

func newFindCmd(e *env) *cobra.Command {
	var engine, encoding string

	cmd := &cobra.Command{
		Use:   "find <haystack|@file> <pattern>",
		Short: "Search once and print each engine's index",
		Long: `Prints the character index of the first occurrence of pattern, or -1.
A haystack starting with @ names a file, decoded with --encoding.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			haystack, err := readHaystack(args[0], encoding, e.cfg.CorpusEncoding)
			if err != nil {
				return err
			}
			pattern := search.Runes(args[1])

			engines := search.Engines(e.cfg.Params())
			if engine != "" {
				one, err := search.Lookup(engine, e.cfg.Params())
				if err != nil {
					return err
				}
				engines = []search.Engine{one}
			}

			outcomes := make([]bench.Outcome, 0, len(engines))
			for _, eng := range engines {
				idx, err := eng.Index(haystack, pattern)
				if err != nil {
					return err
				}
				outcomes = append(outcomes, bench.Outcome{Engine: eng.Name, Index: idx})
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d\n", eng.Name, idx)
			}
			for _, o := range outcomes[1:] {
				if o.Index != outcomes[0].Index {
					return &bench.DisagreementError{Case: "find", Want: outcomes[0].Index, Outcomes: outcomes}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&engine, "engine", "", "Run only this engine ("+strings.Join(search.Names(), ", ")+")")
	cmd.Flags().StringVar(&encoding, "encoding", "", "Encoding of an @file haystack (default STRSEARCH_CORPUS_ENCODING)")

	return cmd
}

func readHaystack(arg, encoding, fallback string) ([]rune, error) {
	name, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return search.Runes(arg), nil
	}
	if encoding == "" {
		encoding = fallback
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return corpus.Decode(f, encoding)
}
