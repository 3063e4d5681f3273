package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lawverra/lawverra-agent/internal/observability"
)

// withLogging wraps a handler and logs every request with a request id.
func withLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			// Downstream loggers pick the id up from the context.
			r = r.WithContext(observability.WithRequestID(r.Context(), requestID))

			w.Header().Set("X-Request-ID", requestID)
			next.ServeHTTP(w, r)

			logger.Info("http request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// withCORS adds basic CORS headers to allow calls from a web front-end.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ChainMiddlewares applies multiple middlewares in order.
func ChainMiddlewares(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}

// WithDefaults wraps the handler in the standard middleware stack.
func WithDefaults(h http.Handler, logger *slog.Logger) http.Handler {
	return ChainMiddlewares(h, withCORS, withLogging(logger))
}
