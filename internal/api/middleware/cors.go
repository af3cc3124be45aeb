package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// CORS разрешает запросы фронтенда с перечисленных origin, включая запросы с credentials.
// Оборачивает весь роутер: preflight OPTIONS отвечает 204 до маршрутизации.
// Пустой список отключает CORS: handlers.CORS без origin разрешил бы любой.
func CORS(origins []string) mux.MiddlewareFunc {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(o, "/"); o != "" {
			allowed = append(allowed, o)
		}
	}

	if len(allowed) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return handlers.CORS(
		handlers.AllowedOrigins(allowed),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", AdminTokenHeader}),
		handlers.AllowCredentials(),
		handlers.OptionStatusCode(http.StatusNoContent),
	)
}
