package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewJournalFile(t *testing.T) {
	now := time.Now().UTC()
	f := NewJournalFile("file-1", "vacation.md", "/journal/2026/vacation.md", "2026", "Planning my trip", now)

	assert.Equal(t, "file-1", f.ID)
	assert.Equal(t, "vacation.md", f.Name)
	assert.Equal(t, "/journal/2026/vacation.md", f.Path)
	assert.Equal(t, "2026", f.Folder)
	assert.Equal(t, now, f.CreatedAt)
	assert.Equal(t, now, f.UpdatedAt)
	assert.Nil(t, f.IndexedAt)
}

func TestValidateJournalFile(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		file    *JournalFile
		wantErr bool
	}{
		{
			name:    "valid file",
			file:    NewJournalFile("file-1", "notes.md", "/notes.md", "", "text", now),
			wantErr: false,
		},
		{
			name:    "nil file",
			file:    nil,
			wantErr: true,
		},
		{
			name:    "missing ID",
			file:    NewJournalFile("", "notes.md", "/notes.md", "", "text", now),
			wantErr: true,
		},
		{
			name:    "blank name",
			file:    NewJournalFile("file-1", "   ", "/notes.md", "", "text", now),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJournalFile(tt.file)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJournalFile_NeedsIndexing(t *testing.T) {
	now := time.Now().UTC()

	f := NewJournalFile("file-1", "notes.md", "/notes.md", "", "text", now)
	assert.True(t, f.NeedsIndexing(), "never-indexed file needs indexing")

	f.IndexedAt = &now
	assert.False(t, f.NeedsIndexing())

	f.UpdatedAt = now.Add(time.Minute)
	assert.True(t, f.NeedsIndexing(), "edit after indexing marks it stale")
}

func TestNewChunk(t *testing.T) {
	c := NewChunk("file-1", 2, "three little words")

	assert.Equal(t, "file-1", c.FileID)
	assert.Equal(t, 2, c.ChunkIndex)
	assert.Equal(t, 3, c.WordCount)
}
