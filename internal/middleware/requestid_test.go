package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	}))

	// идентификатор сгенерирован и вернулся в заголовке
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	require.Equal(t, seen, w.Header().Get("X-Request-Id"))

	// клиентский идентификатор проходит насквозь
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-42")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, "client-42", seen)
	require.Equal(t, "client-42", w.Header().Get("X-Request-Id"))
}

func TestRequestIDFrom_OutsideChain(t *testing.T) {
	require.Empty(t, RequestIDFrom(httptest.NewRequest(http.MethodGet, "/", nil)))
}
