package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/trtslyr/islajournal/internal/api"
	"github.com/trtslyr/islajournal/internal/domain"
)

type Answerer interface {
	Answer(ctx context.Context, userText string, conversation []domain.ConversationMessage, settings domain.ContextSettings) (string, error)
}

type ConversationStore interface {
	Append(ctx context.Context, msg *domain.ConversationMessage) error
	Recent(ctx context.Context, n int) ([]domain.ConversationMessage, error)
}

type SettingsStore interface {
	ContextSettings(ctx context.Context) (domain.ContextSettings, error)
	SaveContextSettings(ctx context.Context, settings domain.ContextSettings) error
}

// QueryHandler answers questions about the journal and records the
// exchange in the conversation history.
type QueryHandler struct {
	svc          Answerer
	conversation ConversationStore
	settings     SettingsStore
}

func NewQueryHandler(svc Answerer, conversation ConversationStore, settings SettingsStore) *QueryHandler {
	return &QueryHandler{svc: svc, conversation: conversation, settings: settings}
}

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Answer string `json:"answer"`
}

const recentMessageWindow = 50

func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	settings, err := h.settings.ContextSettings(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	conversation, err := h.conversation.Recent(r.Context(), recentMessageWindow)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	answer, err := h.svc.Answer(r.Context(), req.Query, conversation, settings)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	// History is best-effort; a failed write must not lose the answer.
	if err := h.conversation.Append(r.Context(), &domain.ConversationMessage{
		Role:    domain.MessageRoleUser,
		Content: req.Query,
	}); err != nil {
		log.Printf("Failed to record user message: %v", err)
	}
	if err := h.conversation.Append(r.Context(), &domain.ConversationMessage{
		Role:    domain.MessageRoleAssistant,
		Content: answer,
	}); err != nil {
		log.Printf("Failed to record assistant message: %v", err)
	}

	api.Success(w, http.StatusOK, QueryResponse{Answer: answer})
}
