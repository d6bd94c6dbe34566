package dom

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document with an event listener registry.
//
// A Document is not safe for concurrent use. Callers mutating the tree,
// dispatching events, or applying patches must serialize those operations.
type Document struct {
	root *html.Node

	// URL is the document address. It is the default form action when set.
	URL *url.URL

	listeners map[*html.Node]map[string][]*Registration
}

// NewDocument wraps an existing tree. The root must be a document node.
func NewDocument(root *html.Node) *Document {
	if Kind(root) != KindDocument {
		panic(fmt.Sprintf("[BUG] dom: document root must be a document node, got %s", Kind(root)))
	}

	return &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]*Registration),
	}
}

// Parse parses an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}

	return NewDocument(root), nil
}

// ParseString parses an HTML document from s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element, or nil.
func (d *Document) Body() *html.Node {
	if bodies := QuerySelectorAll(d.root, atom.Body); len(bodies) > 0 {
		return bodies[0]
	}

	return nil
}

// GetElementByID returns the first element with the given id, or nil.
func (d *Document) GetElementByID(id string) *html.Node {
	return GetElementByID(d.root, id)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document. Render errors yield an empty string.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}

	return buf.String()
}
