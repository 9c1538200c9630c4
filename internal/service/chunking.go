package service

import (
	"strings"
	"unicode"
)

// ChunkConfig controls how journal text is split for embedding.
type ChunkConfig struct {
	MaxChars int
	Overlap  int
}

// DefaultChunkConfig returns the chunk size constants shared by import and
// position estimation. Queries are embedded whole and never chunked.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxChars: 1000,
		Overlap:  200,
	}
}

// ChunkText splits text into overlapping segments of at most cfg.MaxChars
// runes. A boundary is chosen by scanning backward from the naive cut point
// for, in priority order: a sentence terminator followed by whitespace, a
// blank-line paragraph break, then any whitespace. A candidate boundary is
// only taken when it lies past the halfway point of the chunk; otherwise the
// hard cut is used. Empty trimmed segments are discarded.
func ChunkText(text string, cfg ChunkConfig) []string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return nil
	}
	if cfg.MaxChars <= 0 {
		cfg = DefaultChunkConfig()
	}
	runes := []rune(clean)
	if len(runes) <= cfg.MaxChars {
		return []string{clean}
	}

	chunks := make([]string, 0, 8)
	start := 0
	for start < len(runes) {
		end := start + cfg.MaxChars
		if end > len(runes) {
			end = len(runes)
		}

		if end < len(runes) {
			end = cutPoint(runes, start, end)
		}

		if end <= start {
			break
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}

		nextStart := end
		if cfg.Overlap > 0 && end-start > cfg.Overlap {
			nextStart = end - cfg.Overlap
		}
		if nextStart <= start {
			nextStart = end
		}
		start = nextStart
	}

	return chunks
}

// cutPoint finds where to end the chunk beginning at start whose naive cut is
// end. Boundary candidates before the chunk's halfway point are ignored.
func cutPoint(runes []rune, start, end int) int {
	half := start + (end-start)/2

	// Sentence terminator followed by whitespace.
	for i := end; i > half; i-- {
		if isSentenceEnd(runes[i-1]) && i < len(runes) && unicode.IsSpace(runes[i]) {
			return i
		}
	}

	// Blank-line paragraph break.
	for i := end; i > half; i-- {
		if runes[i-1] == '\n' && i >= 2 && runes[i-2] == '\n' {
			return i
		}
	}

	// Any whitespace.
	for i := end; i > half; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}

	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
