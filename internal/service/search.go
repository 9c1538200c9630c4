package service

import (
	"context"
	"log"
	"sort"

	"github.com/trtslyr/islajournal/internal/domain"
	"github.com/trtslyr/islajournal/internal/embedding"
	"github.com/trtslyr/islajournal/internal/telemetry"
)

// ChunkStreamer streams every stored chunk embedding. The callback is invoked
// once per stored (file, chunk-index) pair; returning an error aborts the scan.
type ChunkStreamer interface {
	IterChunks(ctx context.Context, fn func(domain.ChunkEmbedding) error) error
}

// SearchService ranks journal files against a free-text query by cosine
// similarity over their stored chunk vectors.
type SearchService struct {
	chunks ChunkStreamer
}

// NewSearchService creates a new SearchService instance
func NewSearchService(chunks ChunkStreamer) *SearchService {
	return &SearchService{chunks: chunks}
}

// fileScore accumulates the best chunk seen so far for one file. order keeps
// the first-seen position so that ties are broken by iteration order.
type fileScore struct {
	result domain.SimilarityResult
	order  int
}

// Search embeds the query and performs a full scan over all stored vectors.
// Each file is scored by the maximum similarity across its chunks, rewarding
// files with one highly relevant passage over uniformly mediocre ones. Corrupt
// or mis-sized vectors are skipped and logged, never abort the scan. There is
// no minimum-similarity threshold: zero and negative scores are still
// returnable, and the caller decides what to keep. An empty index yields an
// empty list.
func (s *SearchService) Search(ctx context.Context, query string, topK int) ([]domain.SimilarityResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "SearchService.Search", telemetry.SpanAttributes{
		Operation: "search",
	})
	defer span.End()

	if topK <= 0 {
		topK = 10
	}

	queryVec := embedding.Vectorize(query)

	scores := make(map[string]*fileScore)
	order := make([]string, 0, 16)

	err := s.chunks.IterChunks(ctx, func(ce domain.ChunkEmbedding) error {
		vec, decodeErr := embedding.Decode(ce.Vector)
		if decodeErr != nil {
			log.Printf("search: skipping undecodable vector for file %s chunk %d: %v",
				ce.FileID, ce.ChunkIndex, decodeErr)
			return nil
		}
		if len(vec) != embedding.Dimensions {
			log.Printf("search: skipping vector with %d dimensions for file %s chunk %d: %v",
				len(vec), ce.FileID, ce.ChunkIndex, domain.ErrDimensionMismatch)
			return nil
		}

		sim, simErr := embedding.Cosine(queryVec, vec)
		if simErr != nil {
			log.Printf("search: skipping vector for file %s chunk %d: %v", ce.FileID, ce.ChunkIndex, simErr)
			return nil
		}

		fs, ok := scores[ce.FileID]
		if !ok {
			scores[ce.FileID] = &fileScore{
				result: domain.SimilarityResult{
					FileID:        ce.FileID,
					FileName:      ce.FileName,
					BestChunkText: ce.Text,
					Score:         sim,
				},
				order: len(order),
			}
			order = append(order, ce.FileID)
			return nil
		}
		if sim > fs.result.Score {
			fs.result.Score = sim
			fs.result.BestChunkText = ce.Text
		}
		return nil
	})
	if err != nil {
		span.SetError(err)
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeStorage, "failed to scan stored vectors", err)
	}

	results := make([]domain.SimilarityResult, 0, len(order))
	for _, fileID := range order {
		results = append(results, scores[fileID].result)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
