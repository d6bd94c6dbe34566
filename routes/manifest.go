package routes

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest is returned when a manifest document is malformed.
var ErrInvalidManifest = errors.New("routes: invalid manifest")

// Kind classifies a manifest entry by its file name.
type Kind int

const (
	KindRoute Kind = iota
	KindMiddleware
	KindLayout
	KindApp
	KindNotFound
	KindError
)

// specialFiles maps reserved route file names to their kinds.
var specialFiles = map[string]Kind{
	"_middleware": KindMiddleware,
	"_layout":     KindLayout,
	"_app":        KindApp,
	"_404":        KindNotFound,
	"_500":        KindError,
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindRoute:
		return "route"
	case KindMiddleware:
		return "middleware"
	case KindLayout:
		return "layout"
	case KindApp:
		return "app"
	case KindNotFound:
		return "notFound"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is one route file declared by a manifest.
type Entry struct {
	// Path is the file route path, e.g. "./routes/users/[id].tsx".
	Path string `yaml:"-"`

	// Override replaces the template derived from Path when set.
	Override string `yaml:"routeOverride,omitempty"`
}

// Kind classifies the entry. Only KindRoute entries take part in matching.
func (e Entry) Kind() Kind {
	base := trimExtension(path.Base(e.Path))
	if k, ok := specialFiles[base]; ok {
		return k
	}

	return KindRoute
}

// Template returns the path template used to match the entry.
func (e Entry) Template() string {
	if e.Override != "" {
		return e.Override
	}

	return Translate(e.Path)
}

// Dir returns the template of the directory containing the entry. Middleware
// and layouts apply to every route under it.
func (e Entry) Dir() string {
	return Translate(e.Path[:strings.LastIndex(e.Path, "/")+1])
}

// Manifest is an ordered set of route entries. Declaration order is match
// precedence.
type Manifest struct {
	BaseURL string
	Entries []Entry
}

// manifestDocument is the YAML shape of a manifest. Routes stays a raw node
// so mapping order survives decoding.
type manifestDocument struct {
	BaseURL string    `yaml:"baseUrl"`
	Routes  yaml.Node `yaml:"routes"`
}

// LoadManifest decodes a YAML manifest:
//
//	baseUrl: file:///app/
//	routes:
//	  ./routes/index.tsx: {}
//	  ./routes/docs/[...path].tsx:
//	    routeOverride: /documentation/:path+
//
// Entries keep the order of the routes mapping.
func LoadManifest(r io.Reader) (*Manifest, error) {
	var doc manifestDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	m := &Manifest{BaseURL: doc.BaseURL}

	node := &doc.Routes
	if node.Kind == 0 {
		return m, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: routes must be a mapping (line %d)", ErrInvalidManifest, node.Line)
	}

	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		entry := Entry{Path: key.Value}
		switch {
		case value.Kind == yaml.ScalarNode && value.Tag == "!!null":
		case value.Kind == yaml.ScalarNode:
			// Shorthand: a scalar value is the override pattern.
			entry.Override = value.Value
		default:
			if err := value.Decode(&entry); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, key.Value, err)
			}
		}
		if seen[entry.Path] {
			return nil, fmt.Errorf("%w: duplicated route %q (line %d)", ErrInvalidManifest, entry.Path, key.Line)
		}
		seen[entry.Path] = true
		m.Entries = append(m.Entries, entry)
	}

	return m, nil
}

// MarshalYAML writes the manifest back in declaration order.
func (m *Manifest) MarshalYAML() (any, error) {
	routes := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range m.Entries {
		var value yaml.Node
		if err := value.Encode(e); err != nil {
			return nil, err
		}
		routes.Content = append(routes.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Path},
			&value,
		)
	}

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "baseUrl"},
			{Kind: yaml.ScalarNode, Value: m.BaseURL},
			{Kind: yaml.ScalarNode, Value: "routes"},
			routes,
		},
	}, nil
}
