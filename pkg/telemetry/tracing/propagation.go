package tracing

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Propagator returns the global text map propagator (W3C trace context and
// baggage once an enabled tracer has been created).
func Propagator() propagation.TextMapPropagator {
	return otel.GetTextMapPropagator()
}

// Extract extracts trace context from HTTP headers.
func Extract(ctx context.Context, headers http.Header) context.Context {
	return Propagator().Extract(ctx, propagation.HeaderCarrier(headers))
}

// Inject injects trace context into HTTP headers.
func Inject(ctx context.Context, headers http.Header) {
	Propagator().Inject(ctx, propagation.HeaderCarrier(headers))
}

// HTTPMiddleware extracts the caller's trace context, opens a server span
// named after the matched route and exposes the trace id in X-Trace-ID.
func HTTPMiddleware(t *Tracer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := Extract(r.Context(), r.Header)

		name := r.Method + " " + r.URL.Path
		ctx, span := t.Start(ctx, name)
		defer span.End()

		SetHTTPAttributes(span, r.Method, r.URL.Path)
		if id := TraceID(ctx); id != "" {
			w.Header().Set("X-Trace-ID", id)
		}

		req := r.WithContext(ctx)
		next.ServeHTTP(w, req)

		if req.Pattern != "" {
			span.SetName(req.Pattern)
		}
	})
}

// ValidateTraceParent reports whether a traceparent header is well formed:
// version-trace_id-parent_id-trace_flags with 2, 32, 16 and 2 hex digits
// and non-zero ids.
func ValidateTraceParent(traceparent string) bool {
	parts := strings.Split(traceparent, "-")
	if len(parts) != 4 {
		return false
	}
	for i, n := range []int{2, 32, 16, 2} {
		if len(parts[i]) != n || !isHexString(parts[i]) {
			return false
		}
	}
	if strings.Trim(parts[1], "0") == "" || strings.Trim(parts[2], "0") == "" {
		return false
	}
	return true
}

func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
