package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error for presentation, metrics and exit codes.
type Kind string

const (
	KindParse          Kind = "parse"
	KindXML            Kind = "xml"
	KindNotImplemented Kind = "not_implemented"
	KindValue          Kind = "value"
	KindInternal       Kind = "internal"
)

// ParseError reports malformed STC-S.
type ParseError struct {
	Expr       string // The complete input expression
	Pos        int    // 0-based byte offset of the offending token
	Message    string
	Suggestion string // Optional hint, e.g. "Did you mean 'Circle'?"
}

// Error returns a single-line description.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("stc-s: %s at position %d", e.Message, e.Pos)
	if e.Suggestion != "" {
		msg += " (" + e.Suggestion + ")"
	}
	return msg
}

// Context renders the expression with a caret under the offending position.
func (e *ParseError) Context() string {
	return ExtractContext(e.Expr, e.Pos)
}

// XMLError reports malformed STC-X.
type XMLError struct {
	Message string
	Element string // Local name of the element being processed, if any
	Line    int
	Column  int
}

// Error returns a single-line description.
func (e *XMLError) Error() string {
	var sb strings.Builder
	sb.WriteString("stc-x: ")
	sb.WriteString(e.Message)
	if e.Element != "" {
		sb.WriteString(fmt.Sprintf(" in <%s>", e.Element))
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(" at line %d, column %d", e.Line, e.Column))
	}
	return sb.String()
}

// NotImplementedError reports well-formed input the engine does not support.
type NotImplementedError struct {
	Feature string
}

// Error implements the error interface.
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Feature)
}

// NotImplemented is shorthand for &NotImplementedError{Feature: feature}.
func NotImplemented(format string, args ...any) *NotImplementedError {
	return &NotImplementedError{Feature: fmt.Sprintf(format, args...)}
}

// ValueError reports values that are well-formed but impossible.
type ValueError struct {
	Field   string // Dotted path of the offending field, e.g. "space.circle.radius"
	Message string
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	if e.Field == "" {
		return "invalid value: " + e.Message
	}
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Message)
}

// ErrorList accumulates value errors from a validation pass.
type ErrorList struct {
	Errors []*ValueError
}

// NewErrorList creates an empty list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*ValueError, 0)}
}

// Add appends a value error.
func (el *ErrorList) Add(field, format string, args ...any) {
	el.Errors = append(el.Errors, &ValueError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// HasErrors returns true if the list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Error joins all messages with "; ".
func (el *ErrorList) Error() string {
	msgs := make([]string, len(el.Errors))
	for i, err := range el.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.As.
func (el *ErrorList) Unwrap() []error {
	out := make([]error, len(el.Errors))
	for i, err := range el.Errors {
		out[i] = err
	}
	return out
}

// ToError returns nil for an empty list, the single error for a list of one,
// and the list itself otherwise.
func (el *ErrorList) ToError() error {
	switch len(el.Errors) {
	case 0:
		return nil
	case 1:
		return el.Errors[0]
	default:
		return el
	}
}

// KindOf classifies err. Wrapped errors are unwrapped; nil yields "".
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var (
		perr *ParseError
		xerr *XMLError
		nerr *NotImplementedError
		verr *ValueError
	)
	switch {
	case errors.As(err, &perr):
		return KindParse
	case errors.As(err, &xerr):
		return KindXML
	case errors.As(err, &nerr):
		return KindNotImplemented
	case errors.As(err, &verr):
		return KindValue
	default:
		return KindInternal
	}
}
