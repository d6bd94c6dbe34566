package routes

import (
	"path"
	"slices"
	"strings"
)

const (
	// RootPrefix is the directory every route path is rooted at.
	RootPrefix = "./routes"

	// IndexToken collapses a trailing "index" segment to its parent path.
	IndexToken = "index"

	// InternalPrefix is reserved for framework assets. Requests under it are
	// never dispatched to routes.
	InternalPrefix = "/_frsh"
)

// Extensions lists the route file extensions stripped by Translate.
var Extensions = []string{".tsx", ".jsx", ".mts", ".ts", ".js", ".mjs", ".go", ".templ"}

// Translate converts a file route path into a URL path template.
//
//	./routes/index.tsx            -> /
//	./routes/users/[id].tsx       -> /users/:id
//	./routes/docs/[...path].tsx   -> /docs/:path+
//	./routes/(admin)/dashboard.ts -> /dashboard
//
// Translate is pure and total.
func Translate(routePath string) string {
	parts := strings.Split(trimExtension(strings.TrimPrefix(routePath, RootPrefix)), "/")

	mapped := make([]string, 0, len(parts))
	for i, part := range parts {
		switch {
		case strings.HasPrefix(part, "[...") && strings.HasSuffix(part, "]") && len(part) > 4:
			mapped = append(mapped, ":"+part[4:len(part)-1]+"+")
		case strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") && len(part) > 1:
			mapped = append(mapped, ":"+part[1:len(part)-1])
		case strings.HasPrefix(part, "(") && strings.HasSuffix(part, ")") && len(part) > 1:
			// Route groups only organize files on disk.
		case i+1 == len(parts) && part == IndexToken:
			mapped = append(mapped, "")
		default:
			mapped = append(mapped, part)
		}
	}

	pattern := strings.Join(mapped, "/")
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}

	if pattern == "/" || (strings.HasSuffix(pattern, "/") && strings.HasSuffix(routePath, "/")) {
		return pattern
	}

	return strings.TrimSuffix(pattern, "/")
}

// trimExtension removes a recognized route file extension.
func trimExtension(p string) string {
	ext := path.Ext(p)
	if ext != "" && slices.Contains(Extensions, ext) {
		return strings.TrimSuffix(p, ext)
	}

	return p
}
