package routes

import (
	"fmt"
	"strings"
)

// DestinationKind classifies a request path against a manifest.
type DestinationKind int

const (
	// NotFound means no route matched and the path is not internal.
	NotFound DestinationKind = iota

	// Internal means the path is under InternalPrefix.
	Internal

	// Route means some manifest route matched.
	Route
)

// String returns the name used by the framework for the kind.
func (k DestinationKind) String() string {
	switch k {
	case Internal:
		return "internal"
	case Route:
		return "route"
	default:
		return "notFound"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k DestinationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Match is the result of matching a path against a manifest.
type Match struct {
	// Entry is the first manifest entry whose pattern matched.
	Entry Entry

	// Template is the entry's resolved path template.
	Template string

	// Params holds non-empty captures by placeholder name.
	Params map[string]string
}

// compiledEntry pairs a route entry with its compiled pattern.
type compiledEntry struct {
	entry   Entry
	pattern *Pattern
}

// Matcher resolves request paths against the route entries of a manifest.
// Patterns are compiled once by NewMatcher; a Matcher is immutable and safe
// for concurrent use.
type Matcher struct {
	manifest *Manifest
	entries  []compiledEntry
}

// NewMatcher compiles every route entry of the manifest. A nil manifest
// yields a Matcher that classifies everything outside InternalPrefix as
// NotFound.
func NewMatcher(m *Manifest) (*Matcher, error) {
	matcher := &Matcher{manifest: m}
	if m == nil {
		return matcher, nil
	}

	for _, e := range m.Entries {
		if e.Kind() != KindRoute {
			continue
		}
		p, err := Compile(e.Template())
		if err != nil {
			return nil, fmt.Errorf("routes: entry %q: %w", e.Path, err)
		}
		matcher.entries = append(matcher.entries, compiledEntry{entry: e, pattern: p})
	}

	return matcher, nil
}

// Manifest returns the manifest the matcher was built from, possibly nil.
func (m *Matcher) Manifest() *Manifest {
	return m.manifest
}

// Match returns the first entry, in declaration order, whose pattern matches
// the escaped path. Specificity is not considered: a catch-all declared
// before a literal route shadows it.
func (m *Matcher) Match(escapedPath string) (Match, bool) {
	for _, ce := range m.entries {
		if params, ok := ce.pattern.Match(escapedPath); ok {
			return Match{
				Entry:    ce.entry,
				Template: ce.pattern.Template(),
				Params:   params,
			}, true
		}
	}

	return Match{}, false
}

// Params returns the captures of the first matching entry. The result is
// never nil.
func (m *Matcher) Params(escapedPath string) map[string]string {
	if match, ok := m.Match(escapedPath); ok {
		return match.Params
	}

	return map[string]string{}
}

// Classify returns the destination kind of the path. The internal prefix is
// checked first, regardless of manifest contents.
func (m *Matcher) Classify(escapedPath string) DestinationKind {
	if IsInternal(escapedPath) {
		return Internal
	}

	if _, ok := m.Match(escapedPath); ok {
		return Route
	}

	return NotFound
}

// Route returns the template of the matching entry, or "/" when nothing
// matches.
func (m *Matcher) Route(escapedPath string) string {
	if match, ok := m.Match(escapedPath); ok {
		return match.Template
	}

	return "/"
}

// Entries returns the route entries taking part in matching, in order.
func (m *Matcher) Entries() []Entry {
	entries := make([]Entry, len(m.entries))
	for i, ce := range m.entries {
		entries[i] = ce.entry
	}

	return entries
}

// IsInternal reports whether the path is reserved for framework assets.
func IsInternal(p string) bool {
	return strings.HasPrefix(p, InternalPrefix)
}
