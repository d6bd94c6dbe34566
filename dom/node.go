package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeKind is the variant of a node, fixed when the tree is parsed.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindDocument
	KindElement
	KindText
	KindComment
	KindDoctype
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindDoctype:
		return "doctype"
	default:
		return "other"
	}
}

// Kind returns the variant of n. A nil node is KindOther.
func Kind(n *html.Node) NodeKind {
	if n == nil {
		return KindOther
	}

	switch n.Type {
	case html.DocumentNode:
		return KindDocument
	case html.ElementNode:
		return KindElement
	case html.TextNode:
		return KindText
	case html.CommentNode:
		return KindComment
	case html.DoctypeNode:
		return KindDoctype
	default:
		return KindOther
	}
}

// MustElement panics unless n is an element.
func MustElement(n *html.Node) *html.Node {
	if Kind(n) != KindElement {
		panic(fmt.Sprintf("[BUG] dom: expected element node, got %s", Kind(n)))
	}

	return n
}

// MustComment panics unless n is a comment.
func MustComment(n *html.Node) *html.Node {
	if Kind(n) != KindComment {
		panic(fmt.Sprintf("[BUG] dom: expected comment node, got %s", Kind(n)))
	}

	return n
}

// IsElement reports whether n is an element with the given tag.
func IsElement(n *html.Node, tag atom.Atom) bool {
	return Kind(n) == KindElement && n.DataAtom == tag
}

// Attr returns the value of the named attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}

// HasAttr reports whether the named attribute is present.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets or replaces the named attribute.
func SetAttr(n *html.Node, key, val string) {
	MustElement(n)
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes the named attribute if present.
func RemoveAttr(n *html.Node, key string) {
	MustElement(n)
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

// ChildNodes returns every child of n in order.
func ChildNodes(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}

	return nodes
}

// Children returns the element children of n in order.
func Children(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			nodes = append(nodes, c)
		}
	}

	return nodes
}

// TextContent concatenates the text of n and all its descendants.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)

	return sb.String()
}

// Closest returns n or its nearest ancestor satisfying match, or nil.
func Closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for ; n != nil; n = n.Parent {
		if match(n) {
			return n
		}
	}

	return nil
}

// Walk visits the descendants of root in document order. Returning false
// from visit stops the walk.
func Walk(root *html.Node, visit func(*html.Node) bool) {
	var traverse func(*html.Node) bool
	traverse = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !visit(c) || !traverse(c) {
				return false
			}
		}
		return true
	}
	traverse(root)
}

// QuerySelectorAll returns the descendant elements of root with the given
// tag, in document order.
func QuerySelectorAll(root *html.Node, tag atom.Atom) []*html.Node {
	var found []*html.Node
	Walk(root, func(n *html.Node) bool {
		if IsElement(n, tag) {
			found = append(found, n)
		}
		return true
	})

	return found
}

// GetElementByID returns the first descendant element of root whose id
// attribute equals id, or nil.
func GetElementByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if v, ok := Attr(n, "id"); ok && v == id {
				found = n
				return false
			}
		}
		return true
	})

	return found
}

// CloneNode returns a detached deep copy of n.
func CloneNode(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		clone.Attr = make([]html.Attribute, len(n.Attr))
		copy(clone.Attr, n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(CloneNode(c))
	}

	return clone
}
