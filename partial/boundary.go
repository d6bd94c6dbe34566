package partial

import (
	"strings"

	"github.com/vitalvas/frsh/dom"
	"golang.org/x/net/html"
)

// Boundary is a partial region found in one document: a start and end
// marker comment sharing a parent, and the sibling nodes between them.
type Boundary struct {
	Name  string
	Key   string
	Mode  Mode
	Start *html.Node
	End   *html.Node
}

// Content returns the nodes strictly between the start and end markers.
func (b Boundary) Content() []*html.Node {
	var nodes []*html.Node
	for n := b.Start.NextSibling; n != nil && n != b.End; n = n.NextSibling {
		nodes = append(nodes, n)
	}

	return nodes
}

// id is the (name, key) pair identifying a boundary within a document.
type id struct {
	name string
	key  string
}

func (b Boundary) id() id {
	return id{name: b.Name, key: b.Key}
}

// Extract returns the boundaries of the tree rooted at root in document
// order. A start marker is closed by the first following sibling end marker
// with the same name and key; a start marker without one is ignored.
// When several boundaries share a name and key only the first is kept.
//
// Extract panics if a marker comment does not decode.
func Extract(root *html.Node) []Boundary {
	var found []Boundary
	seen := make(map[id]bool)

	var traverse func(*html.Node)
	traverse = func(parent *html.Node) {
		for child := parent.FirstChild; child != nil; child = child.NextSibling {
			if dom.Kind(child) != dom.KindComment {
				traverse(child)
				continue
			}
			if !strings.HasPrefix(child.Data, StartPrefix) {
				continue
			}

			start, _ := Decode(child.Data)
			end := findEnd(child, start)
			if end == nil {
				continue
			}

			b := Boundary{
				Name:  start.Name,
				Key:   start.Key,
				Mode:  start.Mode,
				Start: child,
				End:   end,
			}
			if seen[b.id()] {
				continue
			}
			seen[b.id()] = true
			found = append(found, b)
		}
	}
	traverse(root)

	return found
}

// findEnd scans the following siblings of start for its end marker.
func findEnd(start *html.Node, m Marker) *html.Node {
	for n := start.NextSibling; n != nil; n = n.NextSibling {
		if dom.Kind(n) != dom.KindComment || !strings.HasPrefix(n.Data, EndPrefix) {
			continue
		}
		end, _ := Decode(n.Data)
		if end.Name == m.Name && end.Key == m.Key {
			return n
		}
	}

	return nil
}

// index maps boundaries by (name, key).
func index(boundaries []Boundary) map[id]Boundary {
	m := make(map[id]Boundary, len(boundaries))
	for _, b := range boundaries {
		if _, ok := m[b.id()]; !ok {
			m[b.id()] = b
		}
	}

	return m
}
