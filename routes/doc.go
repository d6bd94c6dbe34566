// Package routes resolves file-based route declarations into URL path
// templates and matches request paths against them.
//
// # Route Paths
//
// A route path names a handler file under RootPrefix. Segments map to
// template parts:
//
//	[name]      -> :name     one segment
//	[...name]   -> :name+    one or more segments
//	(group)     -> omitted   organizational only
//	index       -> omitted   when it is the final segment
//
// The extension is stripped when it is one of Extensions:
//
//	routes.Translate("./routes/users/[id].tsx") // "/users/:id"
//	routes.Translate("./routes/index.tsx")      // "/"
//
// # Manifests
//
// A Manifest lists entries in declaration order and may be loaded from YAML
// with LoadManifest. Entries named _middleware, _layout, _app, _404 and _500
// are special files; they never match a request path.
//
// # Matching
//
// A Matcher compiles every route entry once and applies first-match-wins
// precedence:
//
//	m, err := routes.NewMatcher(manifest)
//	match, ok := m.Match("/users/42")
//	// match.Template == "/users/:id", match.Params["id"] == "42"
//
// Classify reports Internal for paths under InternalPrefix before consulting
// the manifest, Route when some entry matches, and NotFound otherwise.
package routes
