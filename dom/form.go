package dom

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FormOwner returns the form element n is associated with: the element
// named by its form attribute, otherwise its nearest ancestor form.
func (d *Document) FormOwner(n *html.Node) *html.Node {
	if id, ok := Attr(n, "form"); ok {
		if owner := d.GetElementByID(id); IsElement(owner, atom.Form) {
			return owner
		}
		return nil
	}

	if n == nil {
		return nil
	}

	return Closest(n.Parent, func(p *html.Node) bool {
		return IsElement(p, atom.Form)
	})
}

// FormData builds the form data set of form. Only the submitter among the
// submit buttons contributes its value; disabled, unnamed and unchecked
// controls are skipped.
func (d *Document) FormData(form, submitter *html.Node) url.Values {
	MustElement(form)

	values := url.Values{}
	Walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || !isListedControl(n) {
			return true
		}
		if d.FormOwner(n) != form || isDisabled(n) {
			return true
		}
		name, _ := Attr(n, "name")
		if name == "" {
			return true
		}
		appendControlValues(values, n, name, submitter)
		return true
	})

	return values
}

// appendControlValues adds the entries contributed by one control.
func appendControlValues(values url.Values, n *html.Node, name string, submitter *html.Node) {
	switch n.DataAtom {
	case atom.Button:
		if n == submitter {
			v, _ := Attr(n, "value")
			values.Add(name, v)
		}

	case atom.Textarea:
		values.Add(name, TextContent(n))

	case atom.Select:
		for _, v := range selectedOptions(n) {
			values.Add(name, v)
		}

	case atom.Input:
		typ, _ := Attr(n, "type")
		switch strings.ToLower(typ) {
		case "submit":
			if n == submitter {
				v, _ := Attr(n, "value")
				values.Add(name, v)
			}
		case "image":
			if n == submitter {
				values.Add(name+".x", "0")
				values.Add(name+".y", "0")
			}
		case "reset", "button", "file":
		case "checkbox", "radio":
			if HasAttr(n, "checked") {
				v, ok := Attr(n, "value")
				if !ok {
					v = "on"
				}
				values.Add(name, v)
			}
		default:
			v, _ := Attr(n, "value")
			values.Add(name, v)
		}
	}
}

// selectedOptions returns the values of the selected options of a select
// element. A single-choice select with no explicit selection yields its
// first enabled option.
func selectedOptions(sel *html.Node) []string {
	options := QuerySelectorAll(sel, atom.Option)

	var selected []string
	for _, o := range options {
		if HasAttr(o, "selected") && !HasAttr(o, "disabled") {
			selected = append(selected, optionValue(o))
		}
	}
	if len(selected) > 0 || HasAttr(sel, "multiple") {
		return selected
	}

	for _, o := range options {
		if !HasAttr(o, "disabled") {
			return []string{optionValue(o)}
		}
	}

	return nil
}

func optionValue(o *html.Node) string {
	if v, ok := Attr(o, "value"); ok {
		return v
	}

	return strings.Join(strings.Fields(TextContent(o)), " ")
}

// isListedControl reports whether n can contribute to a form data set.
func isListedControl(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Input, atom.Button, atom.Select, atom.Textarea:
		return true
	default:
		return false
	}
}

// isDisabled reports whether a control is disabled directly or through an
// ancestor fieldset.
func isDisabled(n *html.Node) bool {
	if HasAttr(n, "disabled") {
		return true
	}

	return Closest(n.Parent, func(p *html.Node) bool {
		return IsElement(p, atom.Fieldset) && HasAttr(p, "disabled")
	}) != nil
}
