// Package health implements the liveness and readiness endpoints.
//
// Liveness only reports that the process is running. Readiness runs the
// checks registered by the server: the descriptor registry and the frame
// tables are critical, the journal is optional and only degrades readiness
// when its storage cannot be reached.
package health
