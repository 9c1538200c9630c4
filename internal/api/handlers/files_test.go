package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trtslyr/islajournal/internal/domain"
	"github.com/trtslyr/islajournal/internal/pagination"
)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Upsert(ctx context.Context, f *domain.JournalFile) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFileStore) GetByID(ctx context.Context, id string) (*domain.JournalFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalFile), args.Error(1)
}

func (m *MockFileStore) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]*domain.JournalFile, bool, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).([]*domain.JournalFile), args.Bool(1), args.Error(2)
}

type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) IndexFile(ctx context.Context, fileID, fullText string) error {
	args := m.Called(ctx, fileID, fullText)
	return args.Error(0)
}

func (m *MockIndexer) ReindexFile(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

func (m *MockIndexer) RemoveFile(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

func newStoredFile(id string) *domain.JournalFile {
	now := time.Now().UTC()
	indexed := now.Add(time.Second)
	return &domain.JournalFile{
		ID:        id,
		Name:      "entry.md",
		Path:      "/journal/entry.md",
		Folder:    "journal",
		Content:   "Today was quiet.",
		CreatedAt: now,
		UpdatedAt: now,
		IndexedAt: &indexed,
	}
}

func TestFilesHandler_Import_Success(t *testing.T) {
	mockStore := new(MockFileStore)
	mockIndexer := new(MockIndexer)
	handler := NewFilesHandler(mockStore, mockIndexer)

	mockStore.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.JournalFile")).Return(nil)
	mockIndexer.On("IndexFile", mock.Anything, "file-1", "Today was quiet.").Return(nil)
	mockStore.On("GetByID", mock.Anything, "file-1").Return(newStoredFile("file-1"), nil)

	body, _ := json.Marshal(ImportFileRequest{
		ID:      "file-1",
		Name:    "entry.md",
		Path:    "/journal/entry.md",
		Folder:  "journal",
		Content: "Today was quiet.",
	})
	req := httptest.NewRequest(http.MethodPost, "/files", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockStore.AssertExpectations(t)
	mockIndexer.AssertExpectations(t)

	var resp struct {
		Data FileResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "file-1", resp.Data.ID)
	assert.NotEmpty(t, resp.Data.IndexedAt)
	assert.Empty(t, resp.Data.Content, "list/import responses omit content")
}

func TestFilesHandler_Import_GeneratesID(t *testing.T) {
	mockStore := new(MockFileStore)
	mockIndexer := new(MockIndexer)
	handler := NewFilesHandler(mockStore, mockIndexer)

	var captured string
	mockStore.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.JournalFile")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*domain.JournalFile).ID
		}).Return(nil)
	mockIndexer.On("IndexFile", mock.Anything, mock.AnythingOfType("string"), "text").Return(nil)
	mockStore.On("GetByID", mock.Anything, mock.AnythingOfType("string")).Return(newStoredFile("generated"), nil)

	body, _ := json.Marshal(ImportFileRequest{Name: "x.md", Content: "text"})
	req := httptest.NewRequest(http.MethodPost, "/files", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, captured)
}

func TestFilesHandler_Import_MissingName(t *testing.T) {
	handler := NewFilesHandler(new(MockFileStore), new(MockIndexer))

	body, _ := json.Marshal(ImportFileRequest{Content: "orphan text"})
	req := httptest.NewRequest(http.MethodPost, "/files", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilesHandler_Import_IndexingFailure(t *testing.T) {
	mockStore := new(MockFileStore)
	mockIndexer := new(MockIndexer)
	handler := NewFilesHandler(mockStore, mockIndexer)

	mockStore.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	mockIndexer.On("IndexFile", mock.Anything, "file-1", "text").
		Return(domain.ErrStorageUnavailable)

	body, _ := json.Marshal(ImportFileRequest{ID: "file-1", Name: "x.md", Content: "text"})
	req := httptest.NewRequest(http.MethodPost, "/files", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestFilesHandler_Get_NotFound(t *testing.T) {
	mockStore := new(MockFileStore)
	handler := NewFilesHandler(mockStore, new(MockIndexer))

	mockStore.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrFileNotFound)

	req := httptest.NewRequest(http.MethodGet, "/files/missing", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "missing")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFilesHandler_List_Success(t *testing.T) {
	mockStore := new(MockFileStore)
	handler := NewFilesHandler(mockStore, new(MockIndexer))

	mockStore.On("ListWithCursor", mock.Anything, (*pagination.Cursor)(nil), 20).Return([]*domain.JournalFile{
		newStoredFile("file-1"),
		newStoredFile("file-2"),
	}, false, nil)

	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data FileListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Files, 2)
	assert.False(t, resp.Data.HasMore)
	assert.Empty(t, resp.Data.Cursor)
}

func TestFilesHandler_List_Paginates(t *testing.T) {
	mockStore := new(MockFileStore)
	handler := NewFilesHandler(mockStore, new(MockIndexer))

	page := []*domain.JournalFile{newStoredFile("file-1"), newStoredFile("file-2")}
	mockStore.On("ListWithCursor", mock.Anything, (*pagination.Cursor)(nil), 2).Return(page, true, nil)

	req := httptest.NewRequest(http.MethodGet, "/files?limit=2", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data FileListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.HasMore)
	require.NotEmpty(t, resp.Data.Cursor)

	decoded, err := pagination.DecodeCursor(resp.Data.Cursor)
	require.NoError(t, err)
	assert.Equal(t, "file-2", decoded.LastID)
}

func TestFilesHandler_List_InvalidCursor(t *testing.T) {
	handler := NewFilesHandler(new(MockFileStore), new(MockIndexer))

	req := httptest.NewRequest(http.MethodGet, "/files?cursor=%21%21not-base64", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilesHandler_Delete_Success(t *testing.T) {
	mockStore := new(MockFileStore)
	mockIndexer := new(MockIndexer)
	handler := NewFilesHandler(mockStore, mockIndexer)

	mockIndexer.On("RemoveFile", mock.Anything, "file-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/files/file-1", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "file-1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockIndexer.AssertExpectations(t)
}

func TestFilesHandler_Reindex_NotFound(t *testing.T) {
	mockIndexer := new(MockIndexer)
	handler := NewFilesHandler(new(MockFileStore), mockIndexer)

	mockIndexer.On("ReindexFile", mock.Anything, "missing").Return(domain.ErrFileNotFound)

	req := httptest.NewRequest(http.MethodPost, "/files/missing/reindex", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "missing")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	handler.Reindex(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
