package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trtslyr/islajournal/internal/config"
	"github.com/trtslyr/islajournal/internal/database"
	"github.com/trtslyr/islajournal/internal/repository"
	"github.com/trtslyr/islajournal/internal/service"
)

// localEnv bundles the repositories and services the offline commands
// share. Every command opens the database directly; the daemon does not
// need to be running.
type localEnv struct {
	cfg *config.Config
	db  *sql.DB

	files        *repository.FileRepository
	chunks       *repository.ChunkRepository
	conversation *repository.ConversationRepository
	settings     *repository.SettingsRepository

	indexer *service.IndexerService
	search  *service.SearchService
}

func openLocalEnv(ctx context.Context) (*localEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	env := &localEnv{
		cfg:          cfg,
		db:           db,
		files:        repository.NewFileRepository(db),
		chunks:       repository.NewChunkRepository(db),
		conversation: repository.NewConversationRepository(db),
		settings:     repository.NewSettingsRepository(db),
	}
	env.indexer = service.NewIndexerService(env.files, env.chunks)
	env.search = service.NewSearchService(env.chunks)
	return env, nil
}

func (e *localEnv) Close() error {
	return e.db.Close()
}
