package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	stcErrors "mercator-hq/stc/pkg/stc/errors"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "journal.driver",
		Message: "unknown driver",
	}

	expected := "config error in journal.driver: unknown driver"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("field", "message")
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Message != "message" {
		t.Errorf("Message = %q, want %q", err.Message, "message")
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("conform", underlyingErr)

	expected := "conform: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should see through CommandError")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"parse", &stcErrors.ParseError{Expr: "x", Pos: 0, Message: "bad"}, ExitParse},
		{"xml", &stcErrors.XMLError{Message: "bad"}, ExitParse},
		{"not implemented", stcErrors.NotImplemented("conform of %s coordinates", "CARTESIAN3"), ExitNotImplemented},
		{"value", &stcErrors.ValueError{Field: "space.latitude", Message: "beyond the pole"}, ExitValue},
		{"wrapped", NewCommandError("resprof", &stcErrors.ParseError{Message: "bad"}), ExitParse},
		{"config", NewConfigError("server.listen_address", "empty"), ExitFailure},
		{"other", errors.New("disk full"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestDiagnostic(t *testing.T) {
	err := NewCommandError("parsex", fmt.Errorf("two problems:\n  first\n  second"))
	got := Diagnostic(err)
	if strings.Contains(got, "\n") {
		t.Errorf("Diagnostic() = %q, want a single line", got)
	}
	if got != "stc: parsex: two problems:; first; second" {
		t.Errorf("Diagnostic() = %q", got)
	}
	if Diagnostic(nil) != "" {
		t.Error("Diagnostic(nil) should be empty")
	}
}
