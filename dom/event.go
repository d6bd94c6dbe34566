package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Event types dispatched by the document itself.
const (
	EventClick  = "click"
	EventSubmit = "submit"
)

// Event is dispatched to listeners registered on the target and its
// ancestors, innermost first.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string

	// Target is the node the event was dispatched to.
	Target *html.Node

	// CurrentTarget is the node whose listener is running.
	CurrentTarget *html.Node

	// Submitter is the element that triggered a submit event, if any.
	Submitter *html.Node

	defaultPrevented bool
	stopped          bool
}

// PreventDefault cancels the default action of the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles a dispatched event.
type Listener func(*Event)

// Registration is a listener attached to a node.
type Registration struct {
	doc      *Document
	node     *html.Node
	typ      string
	listener Listener
	removed  bool
}

// Remove detaches the listener. Removing twice is a no-op.
func (r *Registration) Remove() {
	if r.removed {
		return
	}
	r.removed = true

	byType := r.doc.listeners[r.node]
	byType[r.typ] = slices.DeleteFunc(byType[r.typ], func(x *Registration) bool {
		return x == r
	})
	if len(byType[r.typ]) == 0 {
		delete(byType, r.typ)
	}
	if len(byType) == 0 {
		delete(r.doc.listeners, r.node)
	}
}

// AddEventListener attaches listener to n for events of the given type.
func (d *Document) AddEventListener(n *html.Node, typ string, listener Listener) *Registration {
	reg := &Registration{doc: d, node: n, typ: typ, listener: listener}

	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]*Registration)
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], reg)

	return reg
}

// ListenerCount returns the number of listeners of the given type on n.
func (d *Document) ListenerCount(n *html.Node, typ string) int {
	return len(d.listeners[n][typ])
}

// Dispatch delivers ev to target and then to each ancestor. It returns false
// if a listener prevented the default action.
func (d *Document) Dispatch(target *html.Node, ev *Event) bool {
	ev.Target = target
	for n := target; n != nil && !ev.stopped; n = n.Parent {
		regs := slices.Clone(d.listeners[n][ev.Type])
		ev.CurrentTarget = n
		for _, reg := range regs {
			if reg.removed {
				continue
			}
			reg.listener(ev)
		}
	}
	ev.CurrentTarget = nil

	return !ev.defaultPrevented
}

// Click dispatches a click event to n and, unless a listener prevents it,
// runs the activation behavior of the nearest submit button: its form owner
// is submitted.
func (d *Document) Click(n *html.Node) {
	if !d.Dispatch(n, &Event{Type: EventClick}) {
		return
	}

	button := Closest(n, isSubmitButton)
	if button == nil || isDisabled(button) {
		return
	}
	if form := d.FormOwner(button); form != nil {
		d.RequestSubmit(form, button)
	}
}

// RequestSubmit dispatches a submit event to form on behalf of submitter,
// which may be nil. It returns false if a listener prevented the default
// action.
func (d *Document) RequestSubmit(form, submitter *html.Node) bool {
	if !IsElement(form, atom.Form) {
		panic("[BUG] dom: RequestSubmit target must be a form element")
	}

	return d.Dispatch(form, &Event{Type: EventSubmit, Submitter: submitter})
}

// isSubmitButton reports whether n submits its form when activated.
func isSubmitButton(n *html.Node) bool {
	switch {
	case IsElement(n, atom.Button):
		typ, _ := Attr(n, "type")
		typ = strings.ToLower(typ)
		return typ == "" || typ == "submit"
	case IsElement(n, atom.Input):
		typ, _ := Attr(n, "type")
		typ = strings.ToLower(typ)
		return typ == "submit" || typ == "image"
	default:
		return false
	}
}
