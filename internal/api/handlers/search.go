package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/trtslyr/islajournal/internal/api"
	"github.com/trtslyr/islajournal/internal/domain"
)

type SearchService interface {
	Search(ctx context.Context, query string, topK int) ([]domain.SimilarityResult, error)
}

// SearchHandler exposes cosine-similarity search over indexed entries.
type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type SearchResultResponse struct {
	FileID        string  `json:"file_id"`
	FileName      string  `json:"file_name"`
	BestChunkText string  `json:"best_chunk_text"`
	Score         float64 `json:"score"`
}

type SearchResponse struct {
	Results []*SearchResultResponse `json:"results"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	results, err := h.svc.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*SearchResultResponse, len(results))
	for i, result := range results {
		responses[i] = &SearchResultResponse{
			FileID:        result.FileID,
			FileName:      result.FileName,
			BestChunkText: result.BestChunkText,
			Score:         result.Score,
		}
	}

	api.Success(w, http.StatusOK, SearchResponse{Results: responses})
}
