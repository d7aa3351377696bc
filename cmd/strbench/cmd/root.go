// Package cmd provides the CLI commands for strbench.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/substring-search/internal/config"
	"github.com/Anish-Chanda/substring-search/internal/corpus"
	"github.com/Anish-Chanda/substring-search/internal/logger"
	"github.com/Anish-Chanda/substring-search/internal/storage"
)

// env is filled in by the root command before any subcommand runs.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd creates the root command for the strbench CLI.
func NewRootCmd() *cobra.Command {
	e := &env{}
	var logLevel string

	cmd := &cobra.Command{
		Use:   "strbench",
		Short: "Compare Boyer-Moore, KMP and Rabin-Karp substring search",
		Long: `strbench times the three search engines over a corpus of texts,
cross-checks their answers, and runs one-off searches.

Configuration comes from STRSEARCH_* environment variables (and a .env file).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			e.cfg = cfg
			e.log = logger.New(cfg.LogLevel)
			zap.ReplaceGlobals(e.log)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides STRSEARCH_LOG_LEVEL)")

	cmd.AddCommand(newRunCmd(e))
	cmd.AddCommand(newVerifyCmd(e))
	cmd.AddCommand(newFindCmd(e))

	return cmd
}

// Execute runs the root command, canceling its context on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// loader opens the corpus in bucket when one is given, otherwise in dir. The
// S3 client is returned so callers can upload to the same bucket.
func (e *env) loader(ctx context.Context, dir, bucket, encoding string) (*corpus.Loader, *storage.Client, error) {
	if dir == "" {
		dir = e.cfg.CorpusDir
	}
	if bucket == "" {
		bucket = e.cfg.S3Bucket
	}
	if encoding == "" {
		encoding = e.cfg.CorpusEncoding
	}

	var (
		src    corpus.Source = corpus.NewDir(dir)
		client *storage.Client
	)
	if bucket != "" {
		awsCfg, err := storage.LoadAWSConfig(ctx, e.cfg.AWSRegion)
		if err != nil {
			return nil, nil, fmt.Errorf("aws config: %w", err)
		}
		if account, err := storage.CallerAccount(ctx, awsCfg); err != nil {
			e.log.Warn("could not resolve AWS caller", zap.Error(err))
		} else {
			e.log.Info("using S3 corpus", zap.String("bucket", bucket), zap.String("account", account))
		}
		client, err = storage.NewWithClient(bucket, awsCfg)
		if err != nil {
			return nil, nil, err
		}
		src = client
	}

	l, err := corpus.NewLoader(src, encoding, e.cfg.CorpusCacheSize)
	if err != nil {
		return nil, nil, err
	}
	return l, client, nil
}
