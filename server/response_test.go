package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/vitalvas/frsh/partial"
)

func TestRender(t *testing.T) {
	t.Run("writes the component", func(t *testing.T) {
		c := partial.Wrap(partial.Props{Name: "main"}, templ.Raw("<p>hi</p>"))

		w := httptest.NewRecorder()
		Render(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<!--frsh-partial:main:0:--><p>hi</p><!--/frsh-partial:main:0:-->", w.Body.String())
	})

	t.Run("render error returns 500", func(t *testing.T) {
		c := templ.ComponentFunc(func(context.Context, io.Writer) error {
			return errors.New("boom")
		})

		w := httptest.NewRecorder()
		Render(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})
}

func TestHTML(t *testing.T) {
	w := httptest.NewRecorder()
	HTML(w, http.StatusNotFound, "<h1>missing</h1>")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>missing</h1>", w.Body.String())
}
