// Package server provides HTTP routing, middleware, and the JSON song endpoints.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
// [New] returns a router with the standard stack installed: panic recovery, request logging,
// security headers, CORS, upload rate limiting and upload size caps.
//
// # Song Endpoints
//
// [SongsHandler] serves the JSON API:
//
//	GET    /api/songs?order=name|band|year   all songs, ascending by key (band when unknown)
//	POST   /api/songs/upload                 multipart CSV in field "file"
//	DELETE /api/songs/clear                  delete every song
//	GET    /health                           liveness and song count
//
// Errors are written as {"ok": false, "error": "..."}. Validation problems map to 400,
// oversized uploads to 413, rate limiting to 429 and store failures to 500.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// The web package registers its HTML page the same way.
package server
