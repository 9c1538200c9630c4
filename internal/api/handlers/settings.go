package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/trtslyr/islajournal/internal/api"
	"github.com/trtslyr/islajournal/internal/domain"
)

// SettingsHandler reads and updates the context configuration.
type SettingsHandler struct {
	store SettingsStore
}

func NewSettingsHandler(store SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

type ContextSettingsPayload struct {
	SelectedFileIDs []string `json:"selected_file_ids"`
	ProfileFileID   string   `json:"profile_file_id"`
	TokenBudget     int      `json:"token_budget"`
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.ContextSettings(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ContextSettingsPayload{
		SelectedFileIDs: settings.SelectedFileIDs,
		ProfileFileID:   settings.ProfileFileID,
		TokenBudget:     settings.TokenBudget,
	})
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ContextSettingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.TokenBudget < 0 {
		api.Error(w, http.StatusBadRequest, "token_budget must not be negative")
		return
	}

	settings := domain.ContextSettings{
		SelectedFileIDs: req.SelectedFileIDs,
		ProfileFileID:   req.ProfileFileID,
		TokenBudget:     req.TokenBudget,
	}
	if err := h.store.SaveContextSettings(r.Context(), settings); err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, req)
}
