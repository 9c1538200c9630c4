package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/trtslyr/islajournal/internal/api/handlers"
	"github.com/trtslyr/islajournal/internal/database"
	"github.com/trtslyr/islajournal/internal/repository"
	"github.com/trtslyr/islajournal/internal/server"
	"github.com/trtslyr/islajournal/internal/service"
)

// cannedGenerator stands in for the local model server so the pipeline can
// be exercised without one running. It echoes a fixed answer and records
// the prompt it was handed.
type cannedGenerator struct {
	Answer  string
	Prompts []string
}

func (g *cannedGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	g.Prompts = append(g.Prompts, prompt)
	if g.Answer == "" {
		return "canned answer", nil
	}
	return g.Answer, nil
}

// Env wires the full daemon stack against a throwaway SQLite database and
// serves it over httptest.
type Env struct {
	Server    *httptest.Server
	Generator *cannedGenerator
}

func SetupE2EEnv(t *testing.T) *Env {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "isla-e2e.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	fileRepo := repository.NewFileRepository(db)
	chunkRepo := repository.NewChunkRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	indexerSvc := service.NewIndexerService(fileRepo, chunkRepo)
	searchSvc := service.NewSearchService(chunkRepo)
	contextBuilder := service.NewContextBuilder(settingsRepo, fileRepo, searchSvc, 0)
	generator := &cannedGenerator{}
	querySvc := service.NewQueryService(contextBuilder, generator, service.DefaultAnswerTokens)

	router := server.NewRouter(server.RouterConfig{
		FilesHandler:    handlers.NewFilesHandler(fileRepo, indexerSvc),
		SearchHandler:   handlers.NewSearchHandler(searchSvc),
		QueryHandler:    handlers.NewQueryHandler(querySvc, conversationRepo, settingsRepo),
		SettingsHandler: handlers.NewSettingsHandler(settingsRepo),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &Env{Server: srv, Generator: generator}
}

// Response is the decoded success envelope.
type Response struct {
	Data json.RawMessage `json:"data"`
}

func (e *Env) do(method, path string, body interface{}) (*Response, int, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.Server.URL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return &envelope, resp.StatusCode, nil
}

func (e *Env) Post(path string, body interface{}) (*Response, int, error) {
	return e.do(http.MethodPost, path, body)
}

func (e *Env) Get(path string) (*Response, int, error) {
	return e.do(http.MethodGet, path, nil)
}

func (e *Env) Put(path string, body interface{}) (*Response, int, error) {
	return e.do(http.MethodPut, path, body)
}

func (e *Env) Delete(path string) (*Response, int, error) {
	return e.do(http.MethodDelete, path, nil)
}
