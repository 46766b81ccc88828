package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"waymark/internal/logs"
	"waymark/internal/models"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// UserPayload — представление аккаунта в ответе логина.
type UserPayload struct {
	ID             string                  `json:"id"`
	UserID         string                  `json:"userId"`
	DisplayName    string                  `json:"displayName"`
	UserType       string                  `json:"userType"`
	OrganizationID string                  `json:"organizationId"`
	Preferences    *models.UserPreferences `json:"preferences"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserPayload `json:"user"`
}

// Login — POST /auth/login. Все отказы верификации — 401; сообщение
// различает только неактивный/просроченный аккаунт, но не «нет такого
// логина» против «неверный пароль».
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" || req.Password == "" {
		models.WriteMessage(w, http.StatusBadRequest, "userId and password are required")
		return
	}

	u, err := h.svc.Verify(r.Context(), req.UserID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			models.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, ErrAccountInactive):
			models.WriteMessage(w, http.StatusUnauthorized, "Account is not active")
		case errors.Is(err, ErrAccountExpired):
			models.WriteMessage(w, http.StatusUnauthorized, "Account has expired")
		default:
			logs.Logger.Errorf("login: verify failed: %v", err)
			models.WriteProblem(w, http.StatusInternalServerError,
				"Internal Server Error", "login failed", nil)
		}
		return
	}

	token, err := h.svc.Issue(u)
	if err != nil {
		logs.Logger.Errorf("login: token issue failed: %v", err)
		models.WriteProblem(w, http.StatusInternalServerError,
			"Internal Server Error", "login failed", nil)
		return
	}

	models.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		User: UserPayload{
			ID:             u.ID,
			UserID:         u.Login,
			DisplayName:    u.DisplayName,
			UserType:       u.UserType,
			OrganizationID: u.OrganizationID,
			Preferences:    u.Preferences,
		},
	})
}
