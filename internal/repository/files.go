package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/trtslyr/islajournal/internal/domain"
	"github.com/trtslyr/islajournal/internal/pagination"
)

// FileRepository handles persistence of journal files.
type FileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Upsert inserts the file or, when the id already exists, replaces its
// content and metadata. Replacing content leaves indexed_at untouched so
// the file shows up as stale until it is reindexed.
func (r *FileRepository) Upsert(ctx context.Context, f *domain.JournalFile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO files (id, name, path, folder, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			folder = excluded.folder,
			content = excluded.content,
			updated_at = excluded.updated_at`,
		f.ID, f.Name, f.Path, f.Folder, f.Content, f.CreatedAt, f.UpdatedAt,
	)
	return err
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (*domain.JournalFile, error) {
	var f domain.JournalFile
	var indexedAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, path, folder, content, created_at, updated_at, indexed_at
		 FROM files WHERE id = ?`,
		id,
	).Scan(&f.ID, &f.Name, &f.Path, &f.Folder, &f.Content, &f.CreatedAt, &f.UpdatedAt, &indexedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}
	if indexedAt.Valid {
		f.IndexedAt = &indexedAt.Time
	}
	return &f, nil
}

func (r *FileRepository) List(ctx context.Context) ([]*domain.JournalFile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, path, folder, content, created_at, updated_at, indexed_at
		 FROM files ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFileRows(rows)
}

// ListWithCursor returns one page of files ordered by (updated_at, id)
// descending. It fetches limit+1 rows to detect whether another page exists.
func (r *FileRepository) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]*domain.JournalFile, bool, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows *sql.Rows
	var err error
	if cursor != nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, name, path, folder, content, created_at, updated_at, indexed_at
			 FROM files
			 WHERE (updated_at < ?) OR (updated_at = ? AND id < ?)
			 ORDER BY updated_at DESC, id DESC
			 LIMIT ?`,
			cursor.Timestamp, cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, name, path, folder, content, created_at, updated_at, indexed_at
			 FROM files
			 ORDER BY updated_at DESC, id DESC
			 LIMIT ?`,
			limit+1,
		)
	}
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	files, err := scanFileRows(rows)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(files) > limit
	if hasMore {
		files = files[:limit]
	}
	return files, hasMore, nil
}

// ListStale returns files that have never been indexed or were modified
// after their last indexing pass.
func (r *FileRepository) ListStale(ctx context.Context) ([]*domain.JournalFile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, path, folder, content, created_at, updated_at, indexed_at
		 FROM files
		 WHERE indexed_at IS NULL OR updated_at > indexed_at
		 ORDER BY updated_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFileRows(rows)
}

func (r *FileRepository) MarkIndexed(ctx context.Context, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE files SET indexed_at = ? WHERE id = ?`, at, id,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}

func scanFileRows(rows *sql.Rows) ([]*domain.JournalFile, error) {
	var files []*domain.JournalFile
	for rows.Next() {
		var f domain.JournalFile
		var indexedAt sql.NullTime
		if err := rows.Scan(&f.ID, &f.Name, &f.Path, &f.Folder, &f.Content, &f.CreatedAt, &f.UpdatedAt, &indexedAt); err != nil {
			return nil, err
		}
		if indexedAt.Valid {
			f.IndexedAt = &indexedAt.Time
		}
		files = append(files, &f)
	}
	return files, rows.Err()
}
