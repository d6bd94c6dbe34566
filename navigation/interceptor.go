package navigation

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/vitalvas/frsh/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type interceptor struct {
	doc     *dom.Document
	origin  *url.URL
	updater Updater
	opts    *options
	regs    []*dom.Registration
}

// Enable attaches navigation listeners to container:
//
//   - anchors with a PartialAttr target or a root-relative href
//   - buttons with a PartialAttr target that have no form owner
//   - every descendant form
//
// Anchor and button clicks are turned into GET requests for origin plus the
// target, tagged with PartialQueryParam. Form submissions are turned into
// GET or POST requests built from the form data set. Interception is
// skipped when the nearest ancestor carrying ClientNavAttr sets it to
// "false" or when the event's default action was already prevented.
func Enable(doc *dom.Document, container *html.Node, origin string, updater Updater, opts ...Option) (Disposer, error) {
	dom.MustElement(container)
	if updater == nil {
		panic("[BUG] navigation: nil updater")
	}

	base, err := parseOrigin(origin)
	if err != nil {
		return nil, err
	}

	in := &interceptor{
		doc:     doc,
		origin:  base,
		updater: updater,
		opts:    newOptions(opts),
	}

	for _, a := range dom.QuerySelectorAll(container, atom.A) {
		target, ok := dom.Attr(a, PartialAttr)
		if !ok {
			target, _ = dom.Attr(a, "href")
		}
		if !isRootRelative(target) {
			continue
		}
		in.listen(a, dom.EventClick, in.onClick(target))
	}

	for _, b := range dom.QuerySelectorAll(container, atom.Button) {
		target, ok := dom.Attr(b, PartialAttr)
		if !ok || doc.FormOwner(b) != nil {
			continue
		}
		in.listen(b, dom.EventClick, in.onClick(target))
	}

	for _, f := range dom.QuerySelectorAll(container, atom.Form) {
		in.listen(f, dom.EventSubmit, in.onSubmit(f))
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, reg := range in.regs {
				reg.Remove()
			}
			in.regs = nil
		})
	}, nil
}

func (in *interceptor) listen(n *html.Node, typ string, l dom.Listener) {
	in.regs = append(in.regs, in.doc.AddEventListener(n, typ, l))
}

func (in *interceptor) onClick(target string) dom.Listener {
	return func(ev *dom.Event) {
		if !in.allowed(ev) {
			return
		}

		u, err := in.resolve(target)
		if err != nil {
			in.opts.logger.Debug("navigation skipped", "target", target, "error", err)
			return
		}
		tagPartial(u)

		req, err := http.NewRequestWithContext(in.opts.ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			in.opts.logger.Debug("navigation skipped", "target", target, "error", err)
			return
		}

		in.update(ev, req)
	}
}

func (in *interceptor) onSubmit(form *html.Node) dom.Listener {
	return func(ev *dom.Event) {
		if !in.allowed(ev) {
			return
		}

		method := formMethod(form, ev.Submitter)
		if method != http.MethodGet && method != http.MethodPost {
			in.opts.logger.Debug("form submission skipped", "method", method)
			return
		}

		action, ok := in.formAction(form, ev.Submitter)
		if !ok {
			in.opts.logger.Debug("form submission skipped", "reason", "no action")
			return
		}
		u, err := in.resolve(action)
		if err != nil {
			in.opts.logger.Debug("form submission skipped", "action", action, "error", err)
			return
		}

		req, err := buildFormRequest(in.opts.ctx, method, u, in.doc.FormData(form, ev.Submitter), formEnctype(form, ev.Submitter))
		if err != nil {
			in.opts.logger.Warn("form submission skipped", "action", action, "error", err)
			return
		}

		in.update(ev, req)
	}
}

func (in *interceptor) update(ev *dom.Event, req *http.Request) {
	if err := in.updater(ev, req); err != nil {
		in.opts.logger.Warn("partial update failed", "method", req.Method, "url", req.URL.String(), "error", err)
	}
}

// allowed reports whether ev should be intercepted.
func (in *interceptor) allowed(ev *dom.Event) bool {
	if ev.DefaultPrevented() {
		return false
	}

	scope := dom.Closest(ev.CurrentTarget, func(n *html.Node) bool {
		return dom.HasAttr(n, ClientNavAttr)
	})
	if scope == nil {
		return true
	}
	v, _ := dom.Attr(scope, ClientNavAttr)

	return v != "false"
}

// resolve builds the absolute URL for target and checks it stays on origin.
func (in *interceptor) resolve(target string) (*url.URL, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return nil, err
	}

	u := in.origin.ResolveReference(ref)
	if u.Scheme != in.origin.Scheme || u.Host != in.origin.Host {
		return nil, fmt.Errorf("navigation: %q is not on origin %s", target, in.origin)
	}

	return u, nil
}

// formAction returns the effective action of a submission: the submitter's
// PartialAttr, its formaction, the form's PartialAttr, the form's action,
// and finally the document URL.
func (in *interceptor) formAction(form, submitter *html.Node) (string, bool) {
	if submitter != nil {
		for _, key := range []string{PartialAttr, "formaction"} {
			if v, ok := dom.Attr(submitter, key); ok && v != "" {
				return v, true
			}
		}
	}
	for _, key := range []string{PartialAttr, "action"} {
		if v, ok := dom.Attr(form, key); ok && v != "" {
			return v, true
		}
	}

	if in.doc.URL != nil {
		return in.doc.URL.EscapedPath(), true
	}

	return "", false
}

// formMethod returns the upper-cased effective method of a submission.
func formMethod(form, submitter *html.Node) string {
	if submitter != nil {
		if v, ok := dom.Attr(submitter, "formmethod"); ok && v != "" {
			return strings.ToUpper(v)
		}
	}
	if v, ok := dom.Attr(form, "method"); ok && v != "" {
		return strings.ToUpper(v)
	}

	return http.MethodGet
}

func formEnctype(form, submitter *html.Node) string {
	if submitter != nil {
		if v, ok := dom.Attr(submitter, "formenctype"); ok && v != "" {
			return strings.ToLower(v)
		}
	}
	v, _ := dom.Attr(form, "enctype")

	return strings.ToLower(v)
}

func parseOrigin(origin string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSuffix(origin, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrigin, err)
	}
	if u.Scheme == "" || u.Host == "" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrigin, origin)
	}

	return u, nil
}

// isRootRelative reports whether target is a path on the current origin,
// e.g. "/docs" but not "//cdn.example.com/x" or "https://example.com".
func isRootRelative(target string) bool {
	return strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//")
}
