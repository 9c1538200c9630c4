package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"7151"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	// DatabasePath defaults to ~/.isla/isla.db when unset.
	DatabasePath string `envconfig:"DB_PATH"`

	GenerationURL   string `envconfig:"GENERATION_URL" default:"http://127.0.0.1:11434/v1"`
	GenerationModel string `envconfig:"GENERATION_MODEL" default:"llama3.1"`

	ContextTokenBudget int `envconfig:"CONTEXT_TOKEN_BUDGET" default:"30000"`

	// ReindexIntervalSeconds controls how often the background worker looks
	// for files whose embeddings are out of date.
	ReindexIntervalSeconds int `envconfig:"REINDEX_INTERVAL_SECONDS" default:"30"`

	SentryDSN string `envconfig:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("ISLA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.DatabasePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.DatabasePath = filepath.Join(home, ".isla", "isla.db")
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
