package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestDispatch(t *testing.T) {
	t.Run("bubbles from target to ancestors", func(t *testing.T) {
		doc := mustParse(t, `<div id="outer"><span id="inner">x</span></div>`)
		outer := doc.GetElementByID("outer")
		inner := doc.GetElementByID("inner")

		var order []string
		doc.AddEventListener(outer, EventClick, func(ev *Event) {
			order = append(order, "outer")
			assert.Equal(t, inner, ev.Target)
			assert.Equal(t, outer, ev.CurrentTarget)
		})
		doc.AddEventListener(inner, EventClick, func(_ *Event) {
			order = append(order, "inner")
		})

		assert.True(t, doc.Dispatch(inner, &Event{Type: EventClick}))
		assert.Equal(t, []string{"inner", "outer"}, order)
	})

	t.Run("reports prevented default", func(t *testing.T) {
		doc := mustParse(t, `<p id="p">x</p>`)
		p := doc.GetElementByID("p")
		doc.AddEventListener(p, "custom", func(ev *Event) { ev.PreventDefault() })

		ev := &Event{Type: "custom"}
		assert.False(t, doc.Dispatch(p, ev))
		assert.True(t, ev.DefaultPrevented())
	})

	t.Run("stop propagation", func(t *testing.T) {
		doc := mustParse(t, `<div id="outer"><span id="inner">x</span></div>`)
		outer := doc.GetElementByID("outer")
		inner := doc.GetElementByID("inner")

		called := false
		doc.AddEventListener(outer, EventClick, func(_ *Event) { called = true })
		doc.AddEventListener(inner, EventClick, func(ev *Event) { ev.StopPropagation() })

		doc.Dispatch(inner, &Event{Type: EventClick})
		assert.False(t, called)
	})

	t.Run("ignores other event types", func(t *testing.T) {
		doc := mustParse(t, `<p id="p">x</p>`)
		p := doc.GetElementByID("p")
		called := false
		doc.AddEventListener(p, EventSubmit, func(_ *Event) { called = true })

		doc.Dispatch(p, &Event{Type: EventClick})
		assert.False(t, called)
	})
}

func TestRegistrationRemove(t *testing.T) {
	doc := mustParse(t, `<p id="p">x</p>`)
	p := doc.GetElementByID("p")

	calls := 0
	reg := doc.AddEventListener(p, EventClick, func(_ *Event) { calls++ })
	other := doc.AddEventListener(p, EventClick, func(_ *Event) {})
	assert.Equal(t, 2, doc.ListenerCount(p, EventClick))

	doc.Click(p)
	assert.Equal(t, 1, calls)

	reg.Remove()
	reg.Remove()
	assert.Equal(t, 1, doc.ListenerCount(p, EventClick))

	doc.Click(p)
	assert.Equal(t, 1, calls)

	other.Remove()
	assert.Equal(t, 0, doc.ListenerCount(p, EventClick))
	assert.Empty(t, doc.listeners)
}

func TestRemoveDuringDispatch(t *testing.T) {
	doc := mustParse(t, `<p id="p">x</p>`)
	p := doc.GetElementByID("p")

	var second *Registration
	secondCalled := false
	doc.AddEventListener(p, EventClick, func(_ *Event) { second.Remove() })
	second = doc.AddEventListener(p, EventClick, func(_ *Event) { secondCalled = true })

	doc.Click(p)
	assert.False(t, secondCalled)
}

func TestClickSubmitsFormOwner(t *testing.T) {
	t.Run("button inside form", func(t *testing.T) {
		doc := mustParse(t, `<form id="f"><button id="b"><span id="label">Go</span></button></form>`)
		form := doc.GetElementByID("f")

		var got *Event
		doc.AddEventListener(form, EventSubmit, func(ev *Event) { got = ev })

		doc.Click(doc.GetElementByID("label"))
		require.NotNil(t, got)
		assert.Equal(t, EventSubmit, got.Type)
		assert.Equal(t, form, got.Target)
		assert.Equal(t, doc.GetElementByID("b"), got.Submitter)
	})

	t.Run("button associated through form attribute", func(t *testing.T) {
		doc := mustParse(t, `<form id="f"></form><input type="submit" id="s" form="f">`)
		submitted := false
		doc.AddEventListener(doc.GetElementByID("f"), EventSubmit, func(_ *Event) { submitted = true })

		doc.Click(doc.GetElementByID("s"))
		assert.True(t, submitted)
	})

	t.Run("non-submit buttons do not submit", func(t *testing.T) {
		doc := mustParse(t, `<form id="f"><button id="b" type="button">x</button><button id="r" type="reset">r</button></form>`)
		submitted := false
		doc.AddEventListener(doc.GetElementByID("f"), EventSubmit, func(_ *Event) { submitted = true })

		doc.Click(doc.GetElementByID("b"))
		doc.Click(doc.GetElementByID("r"))
		assert.False(t, submitted)
	})

	t.Run("disabled buttons do not submit", func(t *testing.T) {
		doc := mustParse(t, `<form id="f"><button id="b" disabled>x</button></form>`)
		submitted := false
		doc.AddEventListener(doc.GetElementByID("f"), EventSubmit, func(_ *Event) { submitted = true })

		doc.Click(doc.GetElementByID("b"))
		assert.False(t, submitted)
	})

	t.Run("prevented click does not submit", func(t *testing.T) {
		doc := mustParse(t, `<form id="f"><button id="b">x</button></form>`)
		b := doc.GetElementByID("b")
		submitted := false
		doc.AddEventListener(doc.GetElementByID("f"), EventSubmit, func(_ *Event) { submitted = true })
		doc.AddEventListener(b, EventClick, func(ev *Event) { ev.PreventDefault() })

		doc.Click(b)
		assert.False(t, submitted)
	})
}

func TestRequestSubmitRequiresForm(t *testing.T) {
	doc := mustParse(t, `<div id="d"></div>`)
	assert.Panics(t, func() {
		doc.RequestSubmit(doc.GetElementByID("d"), nil)
	})
}

func TestIsSubmitButton(t *testing.T) {
	doc := mustParse(t, `<button id="a"></button><button id="b" type="SUBMIT"></button><input id="c" type="image"><input id="d" type="text">`)

	assert.True(t, isSubmitButton(doc.GetElementByID("a")))
	assert.True(t, isSubmitButton(doc.GetElementByID("b")))
	assert.True(t, isSubmitButton(doc.GetElementByID("c")))
	assert.False(t, isSubmitButton(doc.GetElementByID("d")))
	assert.False(t, isSubmitButton(&html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}))
}
