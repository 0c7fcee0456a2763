package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys set on engine and HTTP spans.
const (
	AttrOperation    = "stc.operation"
	AttrInputBytes   = "stc.input.bytes"
	AttrTreeCount    = "stc.tree.count"
	AttrSourceFrame  = "stc.frame.source"
	AttrTargetFrame  = "stc.frame.target"
	AttrResourceID   = "stc.resource.id"
	AttrCacheHit     = "stc.cache.hit"
	AttrErrorKind    = "stc.error.kind"
	AttrHTTPMethod   = "http.method"
	AttrHTTPTarget   = "http.target"
	AttrHTTPStatus   = "http.status_code"
	AttrJournalID    = "stc.journal.id"
	AttrErrorMessage = "error.message"
)

// SetOperationAttributes sets the verb name and input size.
func SetOperationAttributes(span trace.Span, operation string, inputBytes int) {
	span.SetAttributes(
		attribute.String(AttrOperation, operation),
		attribute.Int(AttrInputBytes, inputBytes),
	)
}

// SetFrameAttributes records the frames of a conform call.
func SetFrameAttributes(span trace.Span, source, target string) {
	span.SetAttributes(
		attribute.String(AttrSourceFrame, source),
		attribute.String(AttrTargetFrame, target),
	)
}

// SetCacheAttribute records whether a parse was served from cache.
func SetCacheAttribute(span trace.Span, hit bool) {
	span.SetAttributes(attribute.Bool(AttrCacheHit, hit))
}

// SetErrorAttributes records a failed verb with its error kind.
func SetErrorAttributes(span trace.Span, err error, kind string) {
	if err == nil {
		return
	}
	span.SetAttributes(
		attribute.String(AttrErrorKind, kind),
		attribute.String(AttrErrorMessage, err.Error()),
	)
	SetStatus(span, err)
}

// SetHTTPAttributes records the request line.
func SetHTTPAttributes(span trace.Span, method, target string) {
	span.SetAttributes(
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPTarget, target),
	)
}

// AddEvent adds an event to a span.
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
