// Package engine implements the verbs of the STC service: resprof, parsex,
// conform and help.
//
// Each verb parses its input through a shared fingerprint cache, does its
// work with the parsers, emitters and conform code under pkg/stc, and is
// wrapped with a span, operation metrics, a log line and an optional journal
// record. Multi-resource results are joined with Marker on a line of its own.
//
// An Engine is safe for concurrent use. All collaborators in Options may be
// nil.
package engine
