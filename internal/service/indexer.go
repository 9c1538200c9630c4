package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/trtslyr/islajournal/internal/domain"
	"github.com/trtslyr/islajournal/internal/embedding"
	"github.com/trtslyr/islajournal/internal/telemetry"
)

// IndexFileRepository is the file-registry surface the indexer needs: metadata
// for denormalization onto chunk rows plus lifecycle bookkeeping.
type IndexFileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.JournalFile, error)
	MarkIndexed(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// ChunkWriter persists chunk embeddings. PutChunk is idempotent per
// (file_id, chunk_index); DeleteForFile cascades over a file's chunks.
type ChunkWriter interface {
	PutChunk(ctx context.Context, ce domain.ChunkEmbedding) error
	DeleteForFile(ctx context.Context, fileID string) error
}

// IndexerService runs the import write path: chunk, embed, store, in order,
// one file at a time.
type IndexerService struct {
	files    IndexFileRepository
	chunks   ChunkWriter
	chunkCfg ChunkConfig
}

// NewIndexerService creates a new IndexerService instance
func NewIndexerService(files IndexFileRepository, chunks ChunkWriter) *IndexerService {
	return &IndexerService{
		files:    files,
		chunks:   chunks,
		chunkCfg: DefaultChunkConfig(),
	}
}

// IndexFile chunks fullText, embeds every chunk and stores the vectors with
// the owning file's metadata denormalized onto each row. Existing chunks for
// the file are superseded, so a re-import with fewer chunks leaves no stale
// rows behind.
func (s *IndexerService) IndexFile(ctx context.Context, fileID, fullText string) error {
	ctx, span := telemetry.StartSpan(ctx, "IndexerService.IndexFile", telemetry.SpanAttributes{
		FileID:    fileID,
		Operation: "index",
	})
	defer span.End()

	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		span.SetError(err)
		return err
	}

	if err := s.chunks.DeleteForFile(ctx, fileID); err != nil {
		span.SetError(err)
		return fmt.Errorf("failed to supersede chunks for file %s: %w", fileID, err)
	}

	now := time.Now().UTC()
	stored, words := 0, 0
	for i, text := range ChunkText(fullText, s.chunkCfg) {
		chunk := domain.NewChunk(fileID, i, text)
		words += chunk.WordCount
		vec := embedding.Vectorize(chunk.Text)
		ce := domain.ChunkEmbedding{
			FileID:     chunk.FileID,
			ChunkIndex: chunk.ChunkIndex,
			Text:       chunk.Text,
			Vector:     embedding.Encode(vec),
			FileName:   f.Name,
			FilePath:   f.Path,
			FileFolder: f.Folder,
			CreatedAt:  f.CreatedAt,
			UpdatedAt:  f.UpdatedAt,
		}
		if err := s.chunks.PutChunk(ctx, ce); err != nil {
			span.SetError(err)
			return fmt.Errorf("failed to store chunk %d of file %s: %w", chunk.ChunkIndex, fileID, err)
		}
		stored++
	}

	if err := s.files.MarkIndexed(ctx, fileID, now); err != nil {
		span.SetError(err)
		return fmt.Errorf("failed to mark file %s indexed: %w", fileID, err)
	}
	log.Printf("Indexed file %s: %d chunks, %d words", fileID, stored, words)
	return nil
}

// ReindexFile re-runs the import path over the file's stored content.
func (s *IndexerService) ReindexFile(ctx context.Context, fileID string) error {
	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	return s.IndexFile(ctx, fileID, f.Content)
}

// RemoveFile deletes a file and, cascading, all of its chunk vectors.
func (s *IndexerService) RemoveFile(ctx context.Context, fileID string) error {
	if err := s.chunks.DeleteForFile(ctx, fileID); err != nil {
		return fmt.Errorf("failed to delete chunks for file %s: %w", fileID, err)
	}
	if err := s.files.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}
