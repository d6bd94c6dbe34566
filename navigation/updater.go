package navigation

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/vitalvas/frsh/dom"
	"github.com/vitalvas/frsh/partial"
)

// Fetcher performs a partial fetch. *http.Client's Do method satisfies it.
type Fetcher func(req *http.Request) (*http.Response, error)

// HandlerFetcher serves requests in-process with h.
func HandlerFetcher(h http.Handler) Fetcher {
	return func(req *http.Request) (*http.Response, error) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		return rec.Result(), nil
	}
}

// NewPatchUpdater returns an Updater that prevents the default action,
// fetches the request and applies the partial regions of the response to
// doc. Patches applied through one updater are serialized.
func NewPatchUpdater(doc *dom.Document, fetch Fetcher, opts ...Option) Updater {
	o := newOptions(opts)

	var mu sync.Mutex
	return func(ev *dom.Event, req *http.Request) error {
		ev.PreventDefault()

		resp, err := fetch(req)
		if err != nil {
			return fmt.Errorf("navigation: fetch %s: %w", req.URL, err)
		}

		mu.Lock()
		defer mu.Unlock()

		n, err := partial.ApplyResponse(doc.Root(), resp)
		if err != nil {
			return fmt.Errorf("navigation: apply %s: %w", req.URL, err)
		}

		o.logger.Debug("partials applied", "url", req.URL.String(), "status", resp.StatusCode, "regions", n)

		return nil
	}
}
