package maps

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"waymark/internal/auth"
	"waymark/internal/logs"
	"waymark/internal/models"
	"waymark/internal/repo"
)

type Handler struct {
	store *repo.MapStore
	users *repo.UserStore
}

func NewHandler(store *repo.MapStore, users *repo.UserStore) *Handler {
	return &Handler{store: store, users: users}
}

// единая раскладка ошибок стора: чужое и несуществующее — один и тот же 404
func writeStoreErr(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteMessage(w, http.StatusNotFound, what+" not found")
		return
	}
	logs.Logger.Errorf("maps: %s op failed: %v", what, err)
	models.WriteProblem(w, http.StatusInternalServerError,
		"Internal Server Error", "operation failed", nil)
}

// ---- списки мест ----

func (h *Handler) CreatePlaceList(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	var in repo.ListInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		models.WriteMessage(w, http.StatusBadRequest, "name is required")
		return
	}
	l, err := h.store.CreatePlaceList(r.Context(), id.UserID, in)
	if err != nil {
		writeStoreErr(w, err, "place list")
		return
	}
	models.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) ListPlaceLists(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	out, err := h.store.ListPlaceLists(r.Context(), id.UserID)
	if err != nil {
		writeStoreErr(w, err, "place list")
		return
	}
	models.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) GetPlaceList(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	l, err := h.store.GetPlaceList(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeStoreErr(w, err, "place list")
		return
	}
	models.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) UpdatePlaceList(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	var in repo.ListUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.store.UpdatePlaceList(r.Context(), id.UserID, mux.Vars(r)["id"], in)
	if err != nil {
		writeStoreErr(w, err, "place list")
		return
	}
	models.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) DeletePlaceList(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	if err := h.store.DeletePlaceList(r.Context(), id.UserID, mux.Vars(r)["id"]); err != nil {
		writeStoreErr(w, err, "place list")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- списки маршрутов ----

func (h *Handler) CreateRouteList(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	var in repo.ListInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		models.WriteMessage(w, http.StatusBadRequest, "name is required")
		return
	}
	l, err := h.store.CreateRouteList(r.Context(), id.UserID, in)
	if err != nil {
		writeStoreErr(w, err, "route list")
		return
	}
	models.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) ListRouteLists(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	out, err := h.store.ListRouteLists(r.Context(), id.UserID)
	if err != nil {
		writeStoreErr(w, err, "route list")
		return
	}
	models.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) GetRouteList(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	l, err := h.store.GetRouteList(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeStoreErr(w, err, "route list")
		return
	}
	models.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) UpdateRouteList(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	var in repo.ListUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.store.UpdateRouteList(r.Context(), id.UserID, mux.Vars(r)["id"], in)
	if err != nil {
		writeStoreErr(w, err, "route list")
		return
	}
	models.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) DeleteRouteList(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	if err := h.store.DeleteRouteList(r.Context(), id.UserID, mux.Vars(r)["id"]); err != nil {
		writeStoreErr(w, err, "route list")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- места ----

func (h *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	var in repo.PlaceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		models.WriteMessage(w, http.StatusBadRequest, "name is required")
		return
	}
	p, err := h.store.CreatePlace(r.Context(), id.UserID, in)
	if err != nil {
		writeStoreErr(w, err, "place")
		return
	}
	models.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	out, err := h.store.ListPlaces(r.Context(), id.UserID, r.URL.Query().Get("listId"))
	if err != nil {
		writeStoreErr(w, err, "place")
		return
	}
	models.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	var in repo.PlaceUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.store.UpdatePlace(r.Context(), id.UserID, mux.Vars(r)["id"], in)
	if err != nil {
		writeStoreErr(w, err, "place")
		return
	}
	models.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	if err := h.store.DeletePlace(r.Context(), id.UserID, mux.Vars(r)["id"]); err != nil {
		writeStoreErr(w, err, "place")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteAllPlaces(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	n, err := h.store.DeleteAllPlaces(r.Context(), id.UserID)
	if err != nil {
		writeStoreErr(w, err, "place")
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]int64{"count": n})
}

// ---- маршруты ----

func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	var in repo.RouteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		models.WriteMessage(w, http.StatusBadRequest, "name is required")
		return
	}
	rt, err := h.store.CreateRoute(r.Context(), id.UserID, in)
	if err != nil {
		writeStoreErr(w, err, "route")
		return
	}
	models.WriteJSON(w, http.StatusCreated, rt)
}

func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	out, err := h.store.ListRoutes(r.Context(), id.UserID, r.URL.Query().Get("listId"))
	if err != nil {
		writeStoreErr(w, err, "route")
		return
	}
	models.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	var in repo.RouteUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rt, err := h.store.UpdateRoute(r.Context(), id.UserID, mux.Vars(r)["id"], in)
	if err != nil {
		writeStoreErr(w, err, "route")
		return
	}
	models.WriteJSON(w, http.StatusOK, rt)
}

func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	if err := h.store.DeleteRoute(r.Context(), id.UserID, mux.Vars(r)["id"]); err != nil {
		writeStoreErr(w, err, "route")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteAllRoutes(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	n, err := h.store.DeleteAllRoutes(r.Context(), id.UserID)
	if err != nil {
		writeStoreErr(w, err, "route")
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]int64{"count": n})
}

// ---- цвета карты ----

func (h *Handler) GetMapPreferences(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	p, err := h.users.GetMapPrefs(r.Context(), id.UserID)
	if err != nil {
		writeStoreErr(w, err, "map preferences")
		return
	}
	models.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateMapPreferences(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r)
	var in models.MapPrefs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.users.PutMapPrefs(r.Context(), id.UserID, in); err != nil {
		writeStoreErr(w, err, "map preferences")
		return
	}
	// отдаём то, что реально легло в базу, а не эхо запроса
	stored, err := h.users.GetMapPrefs(r.Context(), id.UserID)
	if err != nil {
		writeStoreErr(w, err, "map preferences")
		return
	}
	models.WriteJSON(w, http.StatusOK, stored)
}
