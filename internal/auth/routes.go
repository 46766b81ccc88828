package auth

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes вешает публичные маршруты аутентификации.
func RegisterRoutes(r *mux.Router, svc *Service) {
	h := NewHandler(svc)
	sub := r.PathPrefix("/auth").Subrouter()
	sub.HandleFunc("/login", h.Login).Methods(http.MethodPost)
}
