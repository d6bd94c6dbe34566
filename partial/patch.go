package partial

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/vitalvas/frsh/dom"
	"golang.org/x/net/html"
)

// ErrNotHTML is returned by ApplyResponse for responses whose content type
// is set and is not HTML.
var ErrNotHTML = errors.New("partial: response is not HTML")

// Apply merges the partial regions of response into live and returns the
// number of regions updated.
//
// Each response boundary is paired with the live boundary of the same name
// and key; response boundaries without a live counterpart are skipped. The
// response boundary's mode decides the merge:
//
//	ModeReplace  live content is removed, then the new content inserted
//	ModeAppend   new content is inserted before the live end marker
//	ModePrepend  new content is inserted after the live start marker
//
// Inserted nodes are deep copies, so response is left untouched. Regions are
// disjoint, so the order in which they are applied does not matter. Apply
// mutates live in place and must not run concurrently with other mutations
// of the same tree.
func Apply(live, response *html.Node) int {
	incoming := Extract(response)
	if len(incoming) == 0 {
		return 0
	}

	current := index(Extract(live))

	applied := 0
	for _, next := range incoming {
		target, ok := current[next.id()]
		if !ok {
			continue
		}
		merge(target, next)
		applied++
	}

	return applied
}

// merge copies the content of next into the live region target.
func merge(target, next Boundary) {
	parent := target.Start.Parent
	if parent == nil || parent != target.End.Parent {
		panic(fmt.Sprintf("[BUG] partial: boundary %q markers do not share a parent", target.Name))
	}

	if next.Mode == ModeReplace {
		for _, n := range target.Content() {
			parent.RemoveChild(n)
		}
	}

	// Anchor is captured before inserting so prepended nodes keep order.
	anchor := target.End
	if next.Mode == ModePrepend {
		anchor = target.Start.NextSibling
	}

	for _, n := range next.Content() {
		parent.InsertBefore(dom.CloneNode(n), anchor)
	}
}

// ApplyHTML parses r as an HTML document and applies it to live.
func ApplyHTML(live *html.Node, r io.Reader) (int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("partial: parse response: %w", err)
	}

	return Apply(live, doc), nil
}

// ApplyResponse reads an HTML response body and applies it to live. The
// body is closed.
func ApplyResponse(live *html.Node, resp *http.Response) (int, error) {
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || !isHTMLMediaType(mediaType) {
			return 0, fmt.Errorf("%w: %q", ErrNotHTML, ct)
		}
	}

	return ApplyHTML(live, resp.Body)
}

func isHTMLMediaType(mediaType string) bool {
	return strings.EqualFold(mediaType, "text/html") || strings.EqualFold(mediaType, "application/xhtml+xml")
}
