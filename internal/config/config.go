package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Anish-Chanda/substring-search/internal/rabin"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	RabinBase    int64
	RabinModulus int64
	Trials       int

	CorpusDir       string
	CorpusEncoding  string
	CorpusCacheSize int

	AWSRegion   string
	S3Bucket    string
	PostgresDSN string
}

// Load reads STRSEARCH_* environment variables on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STRSEARCH")
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RABIN_BASE", rabin.DefaultBase)
	v.SetDefault("RABIN_MODULUS", rabin.DefaultModulus)
	v.SetDefault("TRIALS", 1000)
	v.SetDefault("CORPUS_DIR", ".")
	v.SetDefault("CORPUS_ENCODING", "cp1251")
	v.SetDefault("CORPUS_CACHE_SIZE", 16)

	cfg := &Config{
		ServerAddr: v.GetString("SERVER_ADDR"),
		LogLevel:   v.GetString("LOG_LEVEL"),

		RabinBase:    v.GetInt64("RABIN_BASE"),
		RabinModulus: v.GetInt64("RABIN_MODULUS"),
		Trials:       v.GetInt("TRIALS"),

		CorpusDir:       v.GetString("CORPUS_DIR"),
		CorpusEncoding:  v.GetString("CORPUS_ENCODING"),
		CorpusCacheSize: v.GetInt("CORPUS_CACHE_SIZE"),

		AWSRegion:   v.GetString("AWS_REGION"),
		S3Bucket:    v.GetString("S3_BUCKET"),
		PostgresDSN: v.GetString("POSTGRES_DSN"),
	}
	if err := cfg.Params().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Trials < 1 {
		return nil, fmt.Errorf("config: TRIALS must be positive, got %d", cfg.Trials)
	}
	return cfg, nil
}

// Params returns the Rabin-Karp hash parameters.
func (c *Config) Params() rabin.Params {
	return rabin.Params{Base: c.RabinBase, Modulus: c.RabinModulus}
}
