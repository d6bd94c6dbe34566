package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  int
		wantPanic bool
	}{
		{
			name: "no panic passes through",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "panic returns 500",
			handler: func(_ http.ResponseWriter, _ *http.Request) {
				panic("something went wrong")
			},
			wantCode:  http.StatusInternalServerError,
			wantPanic: true,
		},
		{
			name: "panic with integer value",
			handler: func(_ http.ResponseWriter, _ *http.Request) {
				panic(42)
			},
			wantCode:  http.StatusInternalServerError,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			r := newTestRouter(t, Options{
				Handlers: map[string]http.Handler{"./routes/about.tsx": tt.handler},
			})
			r.Use(Recovery(RecoveryConfig{Logger: logger}))

			w := serve(r, "/about")

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantPanic {
				assert.Contains(t, buf.String(), "handler panic")
				assert.Contains(t, buf.String(), "route=/about")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	capture := func(seen *string) http.Handler {
		return http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			*seen = RequestIDFromContext(r.Context())
		})
	}

	t.Run("generates a uuid", func(t *testing.T) {
		var seen string
		w := httptest.NewRecorder()
		RequestID(RequestIDConfig{})(capture(&seen)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("ignores incoming id by default", func(t *testing.T) {
		var seen string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "incoming")

		RequestID(RequestIDConfig{})(capture(&seen)).ServeHTTP(httptest.NewRecorder(), req)
		assert.NotEqual(t, "incoming", seen)
	})

	t.Run("trusts incoming id", func(t *testing.T) {
		var seen string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace", "incoming")

		w := httptest.NewRecorder()
		RequestID(RequestIDConfig{HeaderName: "X-Trace", TrustIncoming: true})(capture(&seen)).ServeHTTP(w, req)

		assert.Equal(t, "incoming", seen)
		assert.Equal(t, "incoming", w.Header().Get("X-Trace"))
	})

	t.Run("custom generator", func(t *testing.T) {
		var seen string
		cfg := RequestIDConfig{Generate: func(*http.Request) string { return "fixed" }}

		RequestID(cfg)(capture(&seen)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "fixed", seen)
	})

	t.Run("empty context", func(t *testing.T) {
		assert.Empty(t, RequestIDFromContext(t.Context()))
	})
}
