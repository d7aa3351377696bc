package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Anish-Chanda/substring-search/internal/bench"
	"github.com/Anish-Chanda/substring-search/internal/corpus"
	"github.com/Anish-Chanda/substring-search/internal/search"
)

func newVerifyCmd(e *env) *cobra.Command {
	var (
		dir, bucket, encoding string
		workers               int
		sampler               = corpus.DefaultSampler()
	)

	cmd := &cobra.Command{
		Use:   "verify [file...]",
		Short: "Cross-check the engines on patterns sampled from each text",
		Long: `Samples patterns from every text (plus one pattern that does not occur)
and checks that all engines return the leftmost match a naive scan finds.
Without arguments the default articles are checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				for _, t := range defaultTexts {
					file, _, _ := parseText(t)
					args = append(args, file)
				}
			}

			l, _, err := e.loader(ctx, dir, bucket, encoding)
			if err != nil {
				return err
			}
			engines := search.Engines(e.cfg.Params())
			for _, name := range args {
				text, err := l.Load(ctx, name)
				if err != nil {
					return err
				}
				patterns := append(sampler.Sample(text), search.Runes(noPattern))
				if err := bench.Verify(ctx, engines, text, patterns, workers); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d patterns ok\n", name, len(patterns))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dir, "dir", "", "Corpus directory (default STRSEARCH_CORPUS_DIR)")
	f.StringVar(&bucket, "bucket", "", "Read the corpus from this S3 bucket (default STRSEARCH_S3_BUCKET)")
	f.StringVar(&encoding, "encoding", "", "Corpus encoding (default STRSEARCH_CORPUS_ENCODING)")
	f.IntVar(&workers, "workers", 0, "Concurrent checks (default GOMAXPROCS)")
	f.IntVar(&sampler.Length, "length", sampler.Length, "Sampled pattern length in characters")
	f.IntVar(&sampler.Count, "count", sampler.Count, "Maximum patterns per text")

	return cmd
}
