package users

import (
	"net/http"

	"github.com/gorilla/mux"

	"waymark/internal/auth"
	"waymark/internal/repo"
)

// RegisterRoutes вешает /users/* (всё под guard).
func RegisterRoutes(r *mux.Router, store *repo.UserStore, secret []byte) {
	h := NewHandler(store)
	sub := r.PathPrefix("/users").Subrouter()
	sub.Use(auth.RequireAuth(secret))
	sub.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	sub.HandleFunc("/preferences", h.GetPreferences).Methods(http.MethodGet)
	sub.HandleFunc("/preferences", h.UpdatePreferences).Methods(http.MethodPut)
}
