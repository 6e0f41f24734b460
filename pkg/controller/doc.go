// Package controller contains HTTP middlewares and helper handlers used by
// the API server.
//
// Provided middlewares:
//   - WithCORS: origin-allow-list CORS headers and OPTIONS preflight handling.
//   - WithLogger: request-scoped logger and request ID plus an access log line.
//
// Provided helpers:
//   - RegisterPprof: mounts net/http/pprof handlers under /debug/pprof/.
//   - GetClientIP: best-effort client address, used as the rate-limit
//     identifier for unauthenticated callers.
package controller
