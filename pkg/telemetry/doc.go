// Package telemetry groups the observability packages of the STC engine.
//
//   - logging: slog-based structured logging with request-scoped fields
//   - metrics: Prometheus collector for verbs, cache, descriptors, journal and HTTP
//   - tracing: OpenTelemetry spans exported over OTLP/gRPC
//   - health: liveness and readiness endpoints
package telemetry
