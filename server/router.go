package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/vitalvas/frsh/navigation"
	"github.com/vitalvas/frsh/routes"
)

var (
	// ErrUnknownRoute is returned by New for a handler keyed by a path the
	// manifest does not declare.
	ErrUnknownRoute = errors.New("server: unknown route")

	// ErrNotMiddleware is returned by New for a middleware keyed by an entry
	// that is not a _middleware file.
	ErrNotMiddleware = errors.New("server: entry is not a middleware")
)

// MiddlewareFunc wraps an http.Handler with additional behavior.
type MiddlewareFunc func(http.Handler) http.Handler

// Options configures a Router.
type Options struct {
	// Manifest declares the routes. A nil manifest routes every request to
	// the not-found handler, except internal paths.
	Manifest *routes.Manifest

	// Handlers maps manifest route paths, e.g. "./routes/about.tsx", to
	// their handlers. A handler keyed by the _404 entry becomes the default
	// not-found handler.
	Handlers map[string]http.Handler

	// Middlewares maps _middleware entries to the middleware they declare.
	// A middleware applies to every route file in its directory and below.
	Middlewares map[string]MiddlewareFunc

	// InternalHandler serves paths under routes.InternalPrefix.
	// If nil, http.NotFoundHandler() is used.
	InternalHandler http.Handler

	// NotFoundHandler is called when no route matches.
	NotFoundHandler http.Handler

	// Logger receives dispatch decisions at Debug level.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// scopedMiddleware is a middleware with the directory of its route file.
type scopedMiddleware struct {
	dir string
	mw  MiddlewareFunc
}

// Router dispatches requests to the first manifest route matching the path.
//
// It implements http.Handler:
//
//	r, _ := server.New(server.Options{Manifest: manifest, Handlers: handlers})
//	rec := httptest.NewRecorder()
//	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/42", nil))
type Router struct {
	matcher     *routes.Matcher
	handlers    map[string]http.Handler
	scoped      []scopedMiddleware
	middlewares []MiddlewareFunc
	internal    http.Handler
	notFound    http.Handler
	logger      *slog.Logger

	// handlerCache caches the middleware-wrapped handler per route file.
	handlerCache sync.Map // map[string]http.Handler
	notFoundOnce sync.Once
	notFoundWrap http.Handler
}

// New builds a Router. Every handler and middleware key must name an entry
// of the manifest.
func New(opts Options) (*Router, error) {
	matcher, err := routes.NewMatcher(opts.Manifest)
	if err != nil {
		return nil, err
	}

	declared := make(map[string]routes.Entry)
	if opts.Manifest != nil {
		for _, e := range opts.Manifest.Entries {
			declared[e.Path] = e
		}
	}

	r := &Router{
		matcher:  matcher,
		handlers: make(map[string]http.Handler, len(opts.Handlers)),
		internal: opts.InternalHandler,
		notFound: opts.NotFoundHandler,
		logger:   opts.Logger,
	}
	if r.internal == nil {
		r.internal = http.NotFoundHandler()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	for p, h := range opts.Handlers {
		e, ok := declared[p]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, p)
		}
		if e.Kind() == routes.KindNotFound && r.notFound == nil {
			r.notFound = h
		}
		r.handlers[p] = h
	}
	if r.notFound == nil {
		r.notFound = http.NotFoundHandler()
	}

	for p, mw := range opts.Middlewares {
		e, ok := declared[p]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, p)
		}
		if e.Kind() != routes.KindMiddleware {
			return nil, fmt.Errorf("%w: %q is a %s", ErrNotMiddleware, p, e.Kind())
		}
		r.scoped = append(r.scoped, scopedMiddleware{dir: fileDir(p), mw: mw})
	}

	// Shallower directories wrap deeper ones.
	slices.SortStableFunc(r.scoped, func(a, b scopedMiddleware) int {
		if d := strings.Count(a.dir, "/") - strings.Count(b.dir, "/"); d != 0 {
			return d
		}
		return strings.Compare(a.dir, b.dir)
	})

	return r, nil
}

// Use appends middlewares applied to every route and not-found request,
// outside the manifest middlewares. Middlewares must be added before the
// first request is served.
func (r *Router) Use(mwf ...MiddlewareFunc) {
	r.middlewares = append(r.middlewares, mwf...)
}

// Matcher returns the matcher built from the manifest.
func (r *Router) Matcher() *routes.Matcher {
	return r.matcher
}

// ServeHTTP dispatches the request. Internal paths are checked first, then
// manifest routes in declaration order.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if cleaned := cleanPath(req.URL.Path); cleaned != req.URL.Path {
		u := *req.URL
		u.Path = cleaned
		u.RawPath = ""
		req = req.Clone(req.Context())
		req.URL = &u
	}

	escaped := req.URL.EscapedPath()
	rc := &routeContext{
		partial: req.URL.Query().Get(navigation.PartialQueryParam) == "true",
	}

	var handler http.Handler
	switch {
	case routes.IsInternal(escaped):
		rc.destination = routes.Internal
		handler = r.internal
	default:
		if m, ok := r.matcher.Match(escaped); ok {
			rc.destination = routes.Route
			rc.match = m
			handler = r.routeHandler(m.Entry)
		} else {
			rc.destination = routes.NotFound
			handler = r.notFoundHandler()
		}
	}

	r.logger.Debug("dispatch",
		"method", req.Method,
		"path", escaped,
		"destination", rc.destination.String(),
		"route", rc.match.Template,
		"partial", rc.partial,
	)

	handler.ServeHTTP(w, setRouteContext(req, rc))
}

// routeHandler returns the middleware-wrapped handler of a route entry.
// A route declared without a handler is served by the not-found handler.
func (r *Router) routeHandler(e routes.Entry) http.Handler {
	if cached, ok := r.handlerCache.Load(e.Path); ok {
		return cached.(http.Handler)
	}

	h, ok := r.handlers[e.Path]
	if !ok {
		h = r.notFound
	}

	var chain []MiddlewareFunc
	for _, s := range r.scoped {
		if strings.HasPrefix(e.Path, s.dir) {
			chain = append(chain, s.mw)
		}
	}
	wrapped := r.wrap(h, chain)

	actual, _ := r.handlerCache.LoadOrStore(e.Path, wrapped)
	return actual.(http.Handler)
}

// notFoundHandler wraps the not-found handler with the root directory
// middlewares.
func (r *Router) notFoundHandler() http.Handler {
	r.notFoundOnce.Do(func() {
		var chain []MiddlewareFunc
		for _, s := range r.scoped {
			if s.dir == routes.RootPrefix+"/" {
				chain = append(chain, s.mw)
			}
		}
		r.notFoundWrap = r.wrap(r.notFound, chain)
	})

	return r.notFoundWrap
}

// wrap applies the router middlewares and then chain, first outermost.
func (r *Router) wrap(h http.Handler, chain []MiddlewareFunc) http.Handler {
	all := slices.Concat(r.middlewares, chain)
	for i := len(all) - 1; i >= 0; i-- {
		h = all[i](h)
	}

	return h
}

// fileDir returns the directory of a route file path with a trailing slash.
func fileDir(p string) string {
	return p[:strings.LastIndex(p, "/")+1]
}

// cleanPath returns the canonical path for p, eliminating . and .. elements.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	// path.Clean removes trailing slash except for root;
	// put the trailing slash back if necessary.
	if p[len(p)-1] == '/' && np != "/" {
		np += "/"
	}
	return np
}
