package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/trtslyr/islajournal/internal/domain"
)

// ChunkRepository handles persistence of chunk embeddings. File metadata
// is denormalized onto each row so similarity search never has to join
// back to the files table.
type ChunkRepository struct {
	db *sql.DB
}

func NewChunkRepository(db *sql.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// PutChunk inserts or replaces the embedding for (file_id, chunk_index).
// Re-running an indexing pass over the same file is idempotent.
func (r *ChunkRepository) PutChunk(ctx context.Context, c domain.ChunkEmbedding) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chunk_embeddings
			(file_id, chunk_index, chunk_text, vector, file_name, file_path, file_folder, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(file_id, chunk_index) DO UPDATE SET
			chunk_text = excluded.chunk_text,
			vector = excluded.vector,
			file_name = excluded.file_name,
			file_path = excluded.file_path,
			file_folder = excluded.file_folder,
			updated_at = excluded.updated_at`,
		c.FileID, c.ChunkIndex, c.Text, c.Vector, c.FileName, c.FilePath, c.FileFolder, createdAt, updatedAt,
	)
	return err
}

// IterChunks streams every stored embedding to fn in (file_id, chunk_index)
// order. Iteration stops at the first error fn returns.
func (r *ChunkRepository) IterChunks(ctx context.Context, fn func(domain.ChunkEmbedding) error) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT file_id, chunk_index, chunk_text, vector, file_name, file_path, file_folder, created_at, updated_at
		 FROM chunk_embeddings ORDER BY file_id, chunk_index`,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.ChunkEmbedding
		if err := rows.Scan(&c.FileID, &c.ChunkIndex, &c.Text, &c.Vector, &c.FileName, &c.FilePath, &c.FileFolder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *ChunkRepository) DeleteForFile(ctx context.Context, fileID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chunk_embeddings WHERE file_id = ?`, fileID)
	return err
}

func (r *ChunkRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunk_embeddings`).Scan(&n)
	return n, err
}
