package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

const (
	msgMissingToken = "требуется заголовок " + AdminTokenHeader
	msgInvalidToken = "доступ запрещен"
)

// AdminAuth пропускает только запросы с корректным X-Admin-Token.
// Пустой token закрывает admin-маршруты целиком.
func AdminAuth(token string, logger Logger) mux.MiddlewareFunc {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if got == "" {
				logger.Warn("%s %s - Missing admin token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				logger.Warn("%s %s - Invalid admin token from %s", r.Method, r.URL.Path, r.RemoteAddr)
				handlers.RespondForbidden(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
