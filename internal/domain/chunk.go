package domain

import (
	"strings"
	"time"
)

// Chunk is an immutable segment of a journal file produced during import.
// A re-import supersedes chunks by (FileID, ChunkIndex) rather than mutating them.
type Chunk struct {
	FileID     string
	ChunkIndex int
	Text       string
	WordCount  int
}

// NewChunk creates a Chunk, deriving the word count from the text.
func NewChunk(fileID string, index int, text string) Chunk {
	return Chunk{
		FileID:     fileID,
		ChunkIndex: index,
		Text:       text,
		WordCount:  len(strings.Fields(text)),
	}
}

// ChunkEmbedding is a stored chunk vector together with the denormalized
// file metadata needed to display a search hit without a join at query time.
type ChunkEmbedding struct {
	FileID     string
	ChunkIndex int
	Text       string
	// Vector is the packed little-endian float32 layout of the embedding,
	// exactly 4 bytes per dimension. The layout is persisted and must stay
	// stable across versions.
	Vector []byte

	FileName   string
	FilePath   string
	FileFolder string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SimilarityResult is an ephemeral per-query ranking entry. A file's score is
// the maximum cosine similarity across its chunks; BestChunkText carries the
// text of the chunk that produced that maximum.
type SimilarityResult struct {
	FileID        string
	FileName      string
	BestChunkText string
	Score         float64
}
