package maps

import (
	"net/http"

	"github.com/gorilla/mux"

	"waymark/internal/auth"
	"waymark/internal/repo"
)

// RegisterRoutes вешает /maps/* (всё под guard).
func RegisterRoutes(r *mux.Router, store *repo.MapStore, users *repo.UserStore, secret []byte) {
	h := NewHandler(store, users)
	sub := r.PathPrefix("/maps").Subrouter()
	sub.Use(auth.RequireAuth(secret))

	sub.HandleFunc("/place-lists", h.CreatePlaceList).Methods(http.MethodPost)
	sub.HandleFunc("/place-lists", h.ListPlaceLists).Methods(http.MethodGet)
	sub.HandleFunc("/place-lists/{id}", h.GetPlaceList).Methods(http.MethodGet)
	sub.HandleFunc("/place-lists/{id}", h.UpdatePlaceList).Methods(http.MethodPut)
	sub.HandleFunc("/place-lists/{id}", h.DeletePlaceList).Methods(http.MethodDelete)

	sub.HandleFunc("/route-lists", h.CreateRouteList).Methods(http.MethodPost)
	sub.HandleFunc("/route-lists", h.ListRouteLists).Methods(http.MethodGet)
	sub.HandleFunc("/route-lists/{id}", h.GetRouteList).Methods(http.MethodGet)
	sub.HandleFunc("/route-lists/{id}", h.UpdateRouteList).Methods(http.MethodPut)
	sub.HandleFunc("/route-lists/{id}", h.DeleteRouteList).Methods(http.MethodDelete)

	sub.HandleFunc("/places", h.CreatePlace).Methods(http.MethodPost)
	sub.HandleFunc("/places", h.ListPlaces).Methods(http.MethodGet)
	sub.HandleFunc("/places", h.DeleteAllPlaces).Methods(http.MethodDelete)
	sub.HandleFunc("/places/{id}", h.UpdatePlace).Methods(http.MethodPut)
	sub.HandleFunc("/places/{id}", h.DeletePlace).Methods(http.MethodDelete)

	sub.HandleFunc("/routes", h.CreateRoute).Methods(http.MethodPost)
	sub.HandleFunc("/routes", h.ListRoutes).Methods(http.MethodGet)
	sub.HandleFunc("/routes", h.DeleteAllRoutes).Methods(http.MethodDelete)
	sub.HandleFunc("/routes/{id}", h.UpdateRoute).Methods(http.MethodPut)
	sub.HandleFunc("/routes/{id}", h.DeleteRoute).Methods(http.MethodDelete)

	sub.HandleFunc("/preferences", h.GetMapPreferences).Methods(http.MethodGet)
	sub.HandleFunc("/preferences", h.UpdateMapPreferences).Methods(http.MethodPut)
}
