// Package server dispatches requests against a route manifest the way the
// framework's file router does, so route handlers can be exercised without
// a running server.
//
// Handlers and middlewares are keyed by the route file they implement:
//
//	manifest, err := routes.LoadManifest(f)
//	if err != nil {
//		return err
//	}
//
//	r, err := server.New(server.Options{
//		Manifest: manifest,
//		Handlers: map[string]http.Handler{
//			"./routes/users/[id].tsx": http.HandlerFunc(userHandler),
//		},
//		Middlewares: map[string]server.MiddlewareFunc{
//			"./routes/users/_middleware.ts": authMiddleware,
//		},
//	})
//
// Inside a handler the match is available through Params, Param, Route,
// Destination and IsPartial.
package server
