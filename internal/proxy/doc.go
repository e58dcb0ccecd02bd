// Package proxy implements the companion relay and static-bundle server.
//
// # Purpose
//
// The browser build of the myFlix client cannot call the remote backend
// directly from a localhost origin; this server exists to work around that.
// It is a dumb pass-through: requests under /api/ are forwarded verbatim to
// the fixed target origin with the prefix stripped, responses gain CORS
// headers for the single configured allowed origin, and nothing is retried,
// cached, or rewritten beyond that envelope.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. The [BasicRouter] implementation uses
// [http.ServeMux] internally with method filtering.
//
// # Handlers
//
//   - [Relay]: reverse proxy to the target origin, with an optional
//     token-bucket rate limiter in front (429 when exhausted)
//   - [HealthHandler]: JSON liveness endpoint reporting the target
//   - [StaticHandler]: serves the built bundle, falling back to index.html
//     for client-side routes
//
// [Server] wires them together with request logging and CORS applied
// router-wide; preflight OPTIONS requests are answered locally.
package proxy
