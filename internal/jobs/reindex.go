package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/trtslyr/islajournal/internal/domain"
)

// StaleFileRepository defines the interface for finding files whose
// embeddings are out of date
type StaleFileRepository interface {
	// ListStale returns files never indexed or modified since their last
	// indexing pass
	ListStale(ctx context.Context) ([]*domain.JournalFile, error)
}

// IndexingService defines the interface for rebuilding a file's embeddings
type IndexingService interface {
	ReindexFile(ctx context.Context, fileID string) error
}

// ReindexWorker re-embeds stale files in the background so edits made
// while the daemon runs become searchable without an explicit reindex.
type ReindexWorker struct {
	repo    StaleFileRepository
	service IndexingService
}

// NewReindexWorker creates a new ReindexWorker instance
func NewReindexWorker(repo StaleFileRepository, service IndexingService) *ReindexWorker {
	return &ReindexWorker{
		repo:    repo,
		service: service,
	}
}

// ProcessJobs implements the JobProcessor interface
func (w *ReindexWorker) ProcessJobs(ctx context.Context) error {
	files, err := w.repo.ListStale(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stale files: %w", err)
	}

	if len(files) == 0 {
		return nil
	}

	log.Printf("Reindexing %d stale files", len(files))

	// One bad file must not block the rest of the batch.
	for _, f := range files {
		if err := w.service.ReindexFile(ctx, f.ID); err != nil {
			log.Printf("Error reindexing file %s (%s): %v", f.ID, f.Name, err)
		}
	}

	return nil
}
