package server

import (
	"context"
	"net/http"

	"github.com/vitalvas/frsh/routes"
)

type routeContextKey struct{}

// ctxKey is the single context key holding the dispatch result.
var ctxKey = routeContextKey{}

// routeContext holds the dispatch result of one request.
type routeContext struct {
	match       routes.Match
	destination routes.DestinationKind
	partial     bool
}

func fromRequest(r *http.Request) *routeContext {
	rc, _ := r.Context().Value(ctxKey).(*routeContext)
	return rc
}

// Params returns the captures of the matched route. The result is never nil.
func Params(r *http.Request) map[string]string {
	if rc := fromRequest(r); rc != nil && rc.match.Params != nil {
		return rc.match.Params
	}

	return map[string]string{}
}

// Param returns a single capture of the matched route and whether it exists.
// Placeholders that captured an empty value do not exist.
func Param(r *http.Request, name string) (string, bool) {
	if rc := fromRequest(r); rc != nil {
		v, ok := rc.match.Params[name]
		return v, ok
	}

	return "", false
}

// Route returns the template of the matched route, or "/" when the request
// matched none.
func Route(r *http.Request) string {
	if rc := fromRequest(r); rc != nil && rc.destination == routes.Route {
		return rc.match.Template
	}

	return "/"
}

// CurrentEntry returns the manifest entry serving the request, if any.
func CurrentEntry(r *http.Request) (routes.Entry, bool) {
	if rc := fromRequest(r); rc != nil && rc.destination == routes.Route {
		return rc.match.Entry, true
	}

	return routes.Entry{}, false
}

// Destination returns how the request was classified. Requests that did not
// pass through a Router are NotFound.
func Destination(r *http.Request) routes.DestinationKind {
	if rc := fromRequest(r); rc != nil {
		return rc.destination
	}

	return routes.NotFound
}

// IsPartial reports whether the request is a partial fetch, i.e. carries
// the navigation.PartialQueryParam query parameter set to "true".
func IsPartial(r *http.Request) bool {
	if rc := fromRequest(r); rc != nil {
		return rc.partial
	}

	return false
}

// WithMatch returns a copy of r carrying m as its dispatch result. This is
// intended for testing route handlers without a Router.
func WithMatch(r *http.Request, m routes.Match) *http.Request {
	rc := &routeContext{match: m, destination: routes.Route}
	if prev := fromRequest(r); prev != nil {
		rc.partial = prev.partial
	}

	return setRouteContext(r, rc)
}

func setRouteContext(r *http.Request, rc *routeContext) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey, rc))
}
