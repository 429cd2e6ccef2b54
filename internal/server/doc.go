// Package server implements the HTTP surface of the scheduling assistant:
// the POST /chat endpoint, the Google OAuth connect flow under
// /auth/google, and the health endpoints for liveness and readiness
// probes. Prometheus metrics are served from a dedicated listener so
// operational data never shares a port with user traffic.
//
// ServerContext owns the shared dependencies: the Ollama client, the
// OAuth token provider and a lazily populated cache of per-identity
// Google Calendar clients.
package server
