package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"waymark/internal/auth"
	"waymark/internal/logs"
	"waymark/internal/models"
	"waymark/internal/repo"
)

type Handler struct {
	store *repo.UserStore
}

func NewHandler(store *repo.UserStore) *Handler { return &Handler{store: store} }

// Me — GET /users/me: текущий аккаунт с настройками.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r)
	if !ok {
		models.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	u, err := h.store.FindByID(r.Context(), id.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logs.Logger.Errorf("users: me failed: %v", err)
		models.WriteProblem(w, http.StatusInternalServerError,
			"Internal Server Error", "failed to load user", nil)
		return
	}
	models.WriteJSON(w, http.StatusOK, u)
}

// GetPreferences — GET /users/preferences: сохранённые настройки либо дефолты.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	p, err := h.store.GetPreferences(r.Context(), id.UserID)
	if err != nil {
		logs.Logger.Errorf("users: get preferences failed: %v", err)
		models.WriteProblem(w, http.StatusInternalServerError,
			"Internal Server Error", "failed to load preferences", nil)
		return
	}
	models.WriteJSON(w, http.StatusOK, p)
}

type updatePreferencesRequest struct {
	Theme          *string `json:"theme"`
	DatetimeFormat *string `json:"datetimeFormat"`
}

// UpdatePreferences — PUT /users/preferences: частичное слияние полей,
// пропущенные поля не меняются.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	var req updatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.store.UpsertPreferences(r.Context(), id.UserID, req.Theme, req.DatetimeFormat)
	if err != nil {
		logs.Logger.Errorf("users: update preferences failed: %v", err)
		models.WriteProblem(w, http.StatusInternalServerError,
			"Internal Server Error", "failed to update preferences", nil)
		return
	}
	models.WriteJSON(w, http.StatusOK, p)
}
