package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// RecoveryConfig configures the Recovery middleware.
type RecoveryConfig struct {
	// Logger receives recovered panics at Error level.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Recovery returns a middleware that recovers from panics in downstream
// handlers, logs them and responds 500 Internal Server Error.
func Recovery(cfg RecoveryConfig) MiddlewareFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("handler panic",
						"method", r.Method,
						"path", r.URL.Path,
						"route", Route(r),
						"request_id", RequestIDFromContext(r.Context()),
						"panic", err,
					)

					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by RequestID, or an
// empty string.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// RequestIDConfig configures the RequestID middleware.
type RequestIDConfig struct {
	// HeaderName is the header carrying the ID. Defaults to "X-Request-ID".
	HeaderName string

	// Generate returns a new ID. Defaults to a random UUID.
	Generate func(r *http.Request) string

	// TrustIncoming reuses the ID of the incoming request header when set.
	TrustIncoming bool
}

// RequestID returns a middleware that tags every request with an ID, set
// on the request header, the response header and the request context.
func RequestID(cfg RequestIDConfig) MiddlewareFunc {
	header := cfg.HeaderName
	if header == "" {
		header = "X-Request-ID"
	}
	generate := cfg.Generate
	if generate == nil {
		generate = func(*http.Request) string { return uuid.NewString() }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cfg.TrustIncoming {
				id = r.Header.Get(header)
			}
			if id == "" {
				id = generate(r)
			}

			r.Header.Set(header, id)
			w.Header().Set(header, id)

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		})
	}
}
