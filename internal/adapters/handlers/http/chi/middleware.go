package chi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// slowRequestThreshold flags requests worth a warning. Uploads run detection
// inline and legitimately take a while, anything past this is suspect.
const slowRequestThreshold = 2 * time.Minute

// LoggerMiddleware logs one line per request. Health probes are skipped.
func LoggerMiddleware(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				if r.URL.Path == "/health" {
					return
				}

				duration := time.Since(start)
				level := slog.LevelInfo
				if duration > slowRequestThreshold {
					level = slog.LevelWarn
				}
				l.Log(r.Context(), level, "http_request",
					"request_id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", duration,
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
