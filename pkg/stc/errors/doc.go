// Package errors defines the failures the STC engine reports.
//
// # Error Kinds
//
//	ParseError           malformed STC-S; carries the expression and a 0-based byte offset
//	XMLError             malformed STC-X or a missing required attribute; carries line/column
//	NotImplementedError  well-formed input outside the supported subset
//	ValueError           syntactically valid input with impossible values
//
// None of the engine packages recover from or log these errors. Callers
// inspect them with errors.As, or classify them with KindOf:
//
//	tree, err := stc.ParseSTCS(text)
//	var perr *stcErrors.ParseError
//	if errors.As(err, &perr) {
//	    fmt.Print(perr.Context())
//	}
package errors
