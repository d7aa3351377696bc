package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/substring-search/internal/bench"
	"github.com/Anish-Chanda/substring-search/internal/corpus"
	"github.com/Anish-Chanda/substring-search/internal/db"
	"github.com/Anish-Chanda/substring-search/internal/search"
)

// noPattern occurs in none of the default texts.
const noPattern = "some random text, that is not to be found in any text"

var defaultTexts = []string{
	"article_1.txt:Пошук – поширена дія, яка виконується в бізнес-додатках.",
	"article_2.txt:Було проведено серію експериментів для порівняння ефективності використання розглянутих структур даних за затратами часу",
}

type runOptions struct {
	dir      string
	bucket   string
	encoding string
	absent   string
	texts    []string
	trials   int
	store    bool
}

func newRunCmd(e *env) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time every engine on every case",
		Long: `Loads each text, then times every engine on the text's pattern and on a
pattern that does not occur. Each case is a --text file:pattern pair; without
any, the two default articles are used.

The report is printed as a table. With --store it is also saved to Postgres
(STRSEARCH_POSTGRES_DSN); when the corpus comes from S3 the report is uploaded
next to it under reports/.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd.Context(), cmd.OutOrStdout(), e, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.dir, "dir", "", "Corpus directory (default STRSEARCH_CORPUS_DIR)")
	f.StringVar(&opts.bucket, "bucket", "", "Read the corpus from this S3 bucket (default STRSEARCH_S3_BUCKET)")
	f.StringVar(&opts.encoding, "encoding", "", "Corpus encoding (default STRSEARCH_CORPUS_ENCODING)")
	f.StringVar(&opts.absent, "absent", noPattern, "Pattern searched for in every text in addition to its own")
	f.StringArrayVar(&opts.texts, "text", nil, "Case as file:pattern (repeatable)")
	f.IntVar(&opts.trials, "trials", 0, "Timed calls per engine and case (default STRSEARCH_TRIALS)")
	f.BoolVar(&opts.store, "store", false, "Save the report to Postgres")

	return cmd
}

// parseText splits a file:pattern case.
func parseText(s string) (file, pattern string, err error) {
	file, pattern, ok := strings.Cut(s, ":")
	if !ok || file == "" || pattern == "" {
		return "", "", fmt.Errorf("invalid case %q: want file:pattern", s)
	}
	return file, pattern, nil
}

func loadCases(ctx context.Context, l *corpus.Loader, texts []string, absent string) ([]bench.Case, error) {
	var cases []bench.Case
	for _, t := range texts {
		file, pattern, err := parseText(t)
		if err != nil {
			return nil, err
		}
		text, err := l.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		cases = append(cases, bench.Case{Name: file + "/pattern", Haystack: text, Pattern: search.Runes(pattern)})
		if absent != "" {
			cases = append(cases, bench.Case{Name: file + "/no_pattern", Haystack: text, Pattern: search.Runes(absent)})
		}
	}
	return cases, nil
}

func runBench(ctx context.Context, out io.Writer, e *env, opts runOptions) error {
	texts := opts.texts
	if len(texts) == 0 {
		texts = defaultTexts
	}
	trials := opts.trials
	if trials <= 0 {
		trials = e.cfg.Trials
	}

	l, s3Client, err := e.loader(ctx, opts.dir, opts.bucket, opts.encoding)
	if err != nil {
		return err
	}
	cases, err := loadCases(ctx, l, texts, opts.absent)
	if err != nil {
		return err
	}

	runner := &bench.Runner{
		Engines: search.Engines(e.cfg.Params()),
		Trials:  trials,
		Logger:  e.log,
	}
	rep, err := runner.Run(ctx, cases)
	if err != nil {
		return err
	}
	if _, err := rep.WriteTo(out); err != nil {
		return err
	}

	if opts.store {
		if err := storeReport(ctx, e, rep); err != nil {
			return err
		}
	}
	if s3Client != nil {
		var buf bytes.Buffer
		if _, err := rep.WriteTo(&buf); err != nil {
			return err
		}
		key := "reports/" + rep.RunID + ".txt"
		if err := s3Client.PutObject(ctx, key, &buf); err != nil {
			return fmt.Errorf("upload report: %w", err)
		}
		e.log.Info("report uploaded", zap.String("bucket", s3Client.Bucket()), zap.String("key", key))
	}
	return nil
}

func storeReport(ctx context.Context, e *env, rep *bench.Report) error {
	client, err := db.New(e.cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("db init: %w", err)
	}
	defer client.Close()

	if err := client.Migrate(); err != nil {
		return err
	}
	if err := client.SaveReport(ctx, rep); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	e.log.Info("report stored", zap.String("run", rep.RunID), zap.Int("results", len(rep.Results)))
	return nil
}
