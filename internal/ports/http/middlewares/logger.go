package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger logs every completed request with its status, size, and duration.
// Severity follows the response class: 5xx errors, 4xx warnings.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			logger := slog.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("proto", r.Proto),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)

			switch {
			case ww.Status() >= 500:
				logger.ErrorContext(r.Context(), "request completed")
			case ww.Status() >= 400:
				logger.WarnContext(r.Context(), "request completed")
			default:
				logger.InfoContext(r.Context(), "request completed")
			}
		}()

		next.ServeHTTP(ww, r)
	})
}
