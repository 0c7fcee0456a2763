package engine

import (
	"mercator-hq/stc/pkg/cache"
	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/journal"
	"mercator-hq/stc/pkg/stc/stcs"
	"mercator-hq/stc/pkg/stc/stcx"
	"mercator-hq/stc/pkg/telemetry/logging"
	"mercator-hq/stc/pkg/telemetry/metrics"
	"mercator-hq/stc/pkg/telemetry/tracing"
)

// Verb names, also used as metric labels, span names and journal operations.
const (
	OpResourceProfile = "resprof"
	OpParseX          = "parsex"
	OpConform         = "conform"
	OpHelp            = "help"
)

// Marker separates the STC-S lines of a multi-tree result. It sits on its
// own line with a blank line on either side.
const Marker = "-----"

// Options carries the optional collaborators of an Engine. Every field may
// be nil.
type Options struct {
	Cache   *cache.Cache
	Metrics *metrics.Collector
	Tracer  *tracing.Tracer
	Journal *journal.Recorder
	Logger  *logging.Logger
}

// Engine runs the verbs over already-read text. It is safe for concurrent
// use.
type Engine struct {
	config  config.EngineConfig
	parser  *stcs.Parser
	xparser *stcx.Parser
	cache   *cache.Cache
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	journal *journal.Recorder
	logger  *logging.Logger
}

// New creates an engine.
func New(cfg config.EngineConfig, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Engine{
		config: cfg,
		parser: stcs.NewParser().
			WithMaxLength(cfg.MaxExpressionLength).
			WithValidation(!cfg.SkipValidation),
		xparser: stcx.NewParser().WithValidation(!cfg.SkipValidation),
		cache:   opts.Cache,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
		journal: opts.Journal,
		logger:  logger.With("component", "engine"),
	}
}
