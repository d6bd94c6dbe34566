package server

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
)

const contentTypeHTML = "text/html; charset=utf-8"

// Render renders c with the request context and writes it as an HTML
// response with the given status code. If rendering fails, an HTTP 500
// Internal Server Error is written instead.
func Render(w http.ResponseWriter, r *http.Request, code int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

// HTML writes s as an HTML response with the given status code.
func HTML(w http.ResponseWriter, code int, s string) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(code)
	w.Write([]byte(s))
}
