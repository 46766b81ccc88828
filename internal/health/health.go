package health

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"waymark/internal/models"
)

// RegisterRoutes вешает пробы: /healthz — процесс жив,
// /readyz — жив и база отвечает на ping.
func RegisterRoutes(r *mux.Router, db *gorm.DB) {
	r.HandleFunc("/healthz", alive).Methods(http.MethodGet)
	r.HandleFunc("/readyz", ready(db)).Methods(http.MethodGet)
}

func alive(w http.ResponseWriter, _ *http.Request) {
	models.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func ready(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if db == nil {
			models.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "no database"})
			return
		}
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			models.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database unreachable"})
			return
		}
		models.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
