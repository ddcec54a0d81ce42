// Package controller holds the HTTP middlewares and helper handlers shared
// by the API server: request logging with a generated request ID
// (WithLogger), permissive CORS with preflight handling (WithCORS), a
// request duration histogram recorded through an OpenTelemetry meter
// (WithMetrics), and a pprof mux for the debug endpoint (PprofMux).
package controller
