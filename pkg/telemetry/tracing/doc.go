// Package tracing provides OpenTelemetry tracing for engine verbs and HTTP
// requests.
//
// Spans are exported over OTLP/gRPC when telemetry.tracing.enabled is set;
// otherwise every call goes to a no-op tracer. Incoming requests carrying a
// W3C traceparent header continue the caller's trace.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "stc.conform")
//	defer span.End()
package tracing
