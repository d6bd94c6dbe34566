// Package dom provides the document model used to simulate a browser page:
// an HTML tree parsed with golang.org/x/net/html, element queries, event
// dispatch with bubbling, click activation and form data sets.
//
// Nodes keep the *html.Node representation. Kind classifies a node once by
// its parse-time type so callers switch over a closed set of variants:
//
//	switch dom.Kind(n) {
//	case dom.KindElement:
//	case dom.KindComment:
//	}
//
// # Events
//
// Listeners are registered on a Document, not on nodes:
//
//	reg := doc.AddEventListener(anchor, dom.EventClick, func(ev *dom.Event) {
//		ev.PreventDefault()
//	})
//	defer reg.Remove()
//
//	doc.Click(anchor)
//
// Click runs the activation behavior of submit buttons: a submit event is
// dispatched to the button's form owner with Event.Submitter set.
package dom
