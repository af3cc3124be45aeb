package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logging пишет строку лога на каждый запрос: метод, путь, статус, размер, длительность
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start).Round(time.Microsecond)
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s %d %dB %s", r.Method, r.URL.RequestURI(), rec.status, rec.bytes, elapsed)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s %d %dB %s", r.Method, r.URL.RequestURI(), rec.status, rec.bytes, elapsed)
			default:
				logger.Info("%s %s %d %dB %s", r.Method, r.URL.RequestURI(), rec.status, rec.bytes, elapsed)
			}
		})
	}
}
