package engine

import (
	"context"
	"time"

	"mercator-hq/stc/pkg/journal"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
	"mercator-hq/stc/pkg/telemetry/logging"
	"mercator-hq/stc/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// verbFunc does the work of one verb and fills in the parts of rec only it
// knows (tree count, cache hit, systems).
type verbFunc func(ctx context.Context, rec *journal.Record) (string, error)

// run wraps a verb with a span, metrics, a journal record and a log line.
func (e *Engine) run(ctx context.Context, op string, input string, fn verbFunc) (string, error) {
	start := time.Now()

	ctx = logging.WithOperation(ctx, op)
	ctx, span := e.tracer.Start(ctx, "engine."+op)
	defer span.End()
	tracing.SetOperationAttributes(span, op, len(input))

	rec := &journal.Record{
		Operation:  op,
		RequestID:  logging.GetRequestID(ctx),
		Resource:   logging.GetResource(ctx),
		InputHash:  journal.HashInput(input),
		InputBytes: len(input),
	}
	if rec.Resource != "" {
		span.SetAttributes(attribute.String(tracing.AttrResourceID, rec.Resource))
	}

	out, err := fn(ctx, rec)

	duration := time.Since(start)
	kind := string(stcErrors.KindOf(err))
	e.metrics.RecordOperation(op, kind, duration)
	span.SetAttributes(attribute.Int(tracing.AttrTreeCount, rec.Trees))

	rec.Duration = duration
	rec.OutputBytes = len(out)
	logger := e.logger.WithContext(ctx)
	if err != nil {
		rec.Status = journal.StatusError
		rec.ErrorKind = kind
		rec.Error = err.Error()
		tracing.SetErrorAttributes(span, err, kind)
		if kind == string(stcErrors.KindInternal) {
			logger.Error("verb failed", "error", err, "duration_ms", duration.Milliseconds())
		} else {
			logger.Warn("verb rejected input", "kind", kind, "error", err)
		}
	} else {
		rec.Status = journal.StatusSuccess
		tracing.SetStatus(span, nil)
		logger.Debug("verb completed",
			"trees", rec.Trees,
			"cache_hit", rec.CacheHit,
			"duration_ms", duration.Milliseconds(),
		)
	}

	if e.journal != nil {
		e.journal.Record(rec)
		span.SetAttributes(attribute.String(tracing.AttrJournalID, rec.ID))
	}
	return out, err
}
