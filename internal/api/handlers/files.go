package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/trtslyr/islajournal/internal/api"
	"github.com/trtslyr/islajournal/internal/domain"
	"github.com/trtslyr/islajournal/internal/pagination"
)

type FileStore interface {
	Upsert(ctx context.Context, f *domain.JournalFile) error
	GetByID(ctx context.Context, id string) (*domain.JournalFile, error)
	ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]*domain.JournalFile, bool, error)
}

type Indexer interface {
	IndexFile(ctx context.Context, fileID, fullText string) error
	ReindexFile(ctx context.Context, fileID string) error
	RemoveFile(ctx context.Context, fileID string) error
}

// FilesHandler imports journal files and manages their embeddings.
type FilesHandler struct {
	store   FileStore
	indexer Indexer
}

func NewFilesHandler(store FileStore, indexer Indexer) *FilesHandler {
	return &FilesHandler{store: store, indexer: indexer}
}

type ImportFileRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Folder  string `json:"folder,omitempty"`
	Content string `json:"content"`
}

type FileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	Folder    string `json:"folder,omitempty"`
	Content   string `json:"content,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	IndexedAt string `json:"indexed_at,omitempty"`
}

type FileListResponse struct {
	Files   []*FileResponse `json:"files"`
	Cursor  string          `json:"cursor,omitempty"`
	HasMore bool            `json:"has_more"`
}

func fileToResponse(f *domain.JournalFile, includeContent bool) *FileResponse {
	resp := &FileResponse{
		ID:        f.ID,
		Name:      f.Name,
		Path:      f.Path,
		Folder:    f.Folder,
		CreatedAt: f.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: f.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if includeContent {
		resp.Content = f.Content
	}
	if f.IndexedAt != nil {
		resp.IndexedAt = f.IndexedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// Import stores the file and synchronously builds its embeddings, so the
// entry is searchable as soon as the request returns.
func (h *FilesHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	f := domain.NewJournalFile(id, req.Name, req.Path, req.Folder, req.Content, time.Now().UTC())
	if err := domain.ValidateJournalFile(f); err != nil {
		api.HandleError(w, err)
		return
	}

	if err := h.store.Upsert(r.Context(), f); err != nil {
		api.HandleError(w, err)
		return
	}

	if err := h.indexer.IndexFile(r.Context(), f.ID, f.Content); err != nil {
		api.HandleError(w, err)
		return
	}

	stored, err := h.store.GetByID(r.Context(), f.ID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, fileToResponse(stored, false))
}

func (h *FilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	f, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, fileToResponse(f, true))
}

func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			api.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	cursor, err := pagination.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid cursor")
		return
	}

	files, hasMore, err := h.store.ListWithCursor(r.Context(), cursor, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*FileResponse, len(files))
	for i, f := range files {
		responses[i] = fileToResponse(f, false)
	}

	next := ""
	if hasMore {
		next = pagination.CreateNextCursor(files, limit,
			func(f *domain.JournalFile) string { return f.ID },
			func(f *domain.JournalFile) time.Time { return f.UpdatedAt },
		)
	}

	api.Success(w, http.StatusOK, FileListResponse{Files: responses, Cursor: next, HasMore: hasMore})
}

func (h *FilesHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.indexer.ReindexFile(r.Context(), id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, map[string]string{"status": "reindexed"})
}

func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.indexer.RemoveFile(r.Context(), id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, map[string]string{"status": "deleted"})
}
