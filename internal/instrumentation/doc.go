// Package instrumentation wires OpenTelemetry metrics and tracing for the
// scheduling assistant.
//
// Metrics cover the chat request path end to end: HTTP requests, model
// calls to Ollama, tool dispatches and Google Calendar operations. The
// default exporter is Prometheus, served from a dedicated metrics
// listener; OTLP and stdout exporters are available for collector-based
// or local setups.
//
// Instrumentation is optional. With INSTRUMENTATION_ENABLED=false the
// recorder degrades to no-ops and the rest of the service is unaffected.
package instrumentation
