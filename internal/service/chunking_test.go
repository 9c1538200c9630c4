package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	text := "A short journal entry about my day."
	chunks := ChunkText(text, DefaultChunkConfig())

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkText_EmptyInput(t *testing.T) {
	assert.Nil(t, ChunkText("", DefaultChunkConfig()))
	assert.Nil(t, ChunkText("   \n\t  ", DefaultChunkConfig()))
}

func TestChunkText_NeverExceedsMaxChars(t *testing.T) {
	cfg := DefaultChunkConfig()
	long := strings.Repeat("I wrote a little more today. ", 300)

	for _, chunk := range ChunkText(long, cfg) {
		assert.LessOrEqual(t, len([]rune(chunk)), cfg.MaxChars)
	}
}

func TestChunkText_OverlapCoversWithoutGaps(t *testing.T) {
	cfg := DefaultChunkConfig()
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&sb, "Entry number %d had something worth keeping. ", i)
	}
	original := strings.TrimSpace(sb.String())

	chunks := ChunkText(original, cfg)
	require.Greater(t, len(chunks), 1)

	// Each chunk is a trimmed substring of the original; consecutive chunks
	// must overlap or touch so no content falls between them.
	prevStart := 0
	prevEnd := 0
	for i, chunk := range chunks {
		idx := strings.Index(original[prevStart:], chunk)
		require.GreaterOrEqual(t, idx, 0, "chunk %d not found in original", i)
		start := prevStart + idx
		if i > 0 {
			assert.LessOrEqual(t, start, prevEnd, "gap before chunk %d", i)
		}
		prevStart = start
		prevEnd = start + len(chunk)
	}
	assert.Equal(t, len(original), prevEnd, "final chunk must reach the end of the text")
}

func TestChunkText_PrefersSentenceBoundary(t *testing.T) {
	cfg := ChunkConfig{MaxChars: 100, Overlap: 20}
	// The sentence terminator sits past the halfway point of the first chunk.
	text := strings.Repeat("word ", 14) + "end of thought. " + strings.Repeat("more ", 40)

	chunks := ChunkText(text, cfg)
	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], "end of thought."), "got %q", chunks[0])
}

func TestChunkText_PrefersParagraphBreakOverWhitespace(t *testing.T) {
	cfg := ChunkConfig{MaxChars: 100, Overlap: 20}
	// No sentence terminator in the window; the blank line past the halfway
	// point wins over the later single spaces.
	text := strings.Repeat("alpha ", 11) + "\n\n" + strings.Repeat("beta ", 40)

	chunks := ChunkText(text, cfg)
	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], "alpha"), "got %q", chunks[0])
}

func TestChunkText_HardCutWhenBoundaryBeforeHalfway(t *testing.T) {
	cfg := ChunkConfig{MaxChars: 100, Overlap: 0}
	// One space at position 10, then an unbroken run: every boundary candidate
	// sits before the halfway point, so the naive hard cut is used.
	text := "tiny intro " + strings.Repeat("x", 300)

	chunks := ChunkText(text, cfg)
	require.Greater(t, len(chunks), 1)
	assert.Equal(t, cfg.MaxChars, len([]rune(chunks[0])))
}

func TestChunkText_ZeroConfigFallsBackToDefaults(t *testing.T) {
	long := strings.Repeat("Some steady writing practice. ", 100)
	chunks := ChunkText(long, ChunkConfig{})

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), DefaultChunkConfig().MaxChars)
	}
}
