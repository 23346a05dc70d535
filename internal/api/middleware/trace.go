package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/forgebreaker/internal/api/shared"
)

// TraceMiddleware attaches a fresh trace ID to every request context.
// Apply it first so all downstream handlers and error responses carry
// the same ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		slog.Debug("request started",
			slog.String("trace_id", traceID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
