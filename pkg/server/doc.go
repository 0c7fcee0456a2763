// Package server serves the engine verbs and the descriptor registry over
// HTTP.
//
// Routes:
//
//	POST /v1/resprof                  STC-S body, STC-X resource profile reply
//	POST /v1/parsex                   STC-X body, {"stcs": [...]} reply
//	POST /v1/conform                  {"source": ..., "target": ...}, STC-S reply
//	GET  /v1/help                     verb listing
//	GET  /v1/resources                descriptor summaries
//	GET  /v1/resources/{id}           one summary
//	GET  /v1/resources/{id}/profile   profile of a descriptor
//	POST /v1/resources/{id}/conform   target STC-S body, STC-S reply
//	GET  /health, /ready, /version    probes and build information
//	GET  <metrics path>               Prometheus exposition
//
// Failures reply with an ErrorResponse. Malformed STC-S, STC-X and out of
// range values answer 400, conversions outside the supported subset 422,
// unknown resources 404 and oversized bodies 413.
//
// Every request gets an X-Request-ID (the client's, or a fresh UUID) that
// appears in log lines, spans and journal records.
package server
