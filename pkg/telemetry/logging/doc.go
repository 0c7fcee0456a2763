// Package logging wraps log/slog with the output formats and levels of the
// telemetry configuration and with request-scoped fields carried in a
// context.Context.
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	ctx = logging.WithRequestID(ctx, id)
//	logger.InfoContext(ctx, "conform finished", "target", "GALACTIC")
package logging
