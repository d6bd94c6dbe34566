package navigation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vitalvas/frsh/dom"
)

// Reserved attribute and query parameter names.
const (
	// ClientNavAttr marks a subtree as client-nav enabled. The value "false"
	// disables navigation for the subtree.
	ClientNavAttr = "f-client-nav"

	// PartialAttr overrides the navigation target of an anchor, button or form.
	PartialAttr = "f-partial"

	// PartialQueryParam is added to every GET partial fetch.
	PartialQueryParam = "fresh-partial"
)

// ErrInvalidOrigin is returned by Enable when the origin is not of the form
// scheme://host[:port].
var ErrInvalidOrigin = errors.New("navigation: invalid origin")

// Updater receives each navigation intent: the event that triggered it and
// the request it describes. An Updater that handles the navigation is
// expected to call ev.PreventDefault.
type Updater func(ev *dom.Event, req *http.Request) error

// Disposer detaches every listener attached by Enable. Calling it more than
// once is a no-op.
type Disposer func()

// Option configures Enable and NewPatchUpdater.
type Option func(*options)

type options struct {
	logger *slog.Logger
	ctx    context.Context
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: slog.Default(),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithLogger sets the logger for skipped navigations and updater errors.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithContext sets the context attached to built requests.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
