package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"waymark/internal/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// RequireAuth — guard для защищённых маршрутов: Authorization: Bearer <jwt>.
// Проверяет подпись и срок, кладёт Identity в context запроса.
// Другого пути аутентификации нет.
func RequireAuth(secret []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const p = "Bearer "
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, p) {
				models.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			id, err := ParseToken(strings.TrimPrefix(h, p), secret)
			if err != nil {
				models.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom достаёт идентичность, положенную RequireAuth.
func IdentityFrom(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}
