package cli

import (
	"errors"
	"fmt"
	"strings"

	stcErrors "mercator-hq/stc/pkg/stc/errors"
)

// Process exit codes.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitParse          = 2
	ExitNotImplemented = 3
	ExitValue          = 4
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps an error to the process exit status: 2 for malformed STC-S
// or STC-X, 3 for unsupported constructs, 4 for out of range values and 1
// for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitFailure
	}
	switch stcErrors.KindOf(err) {
	case stcErrors.KindParse, stcErrors.KindXML:
		return ExitParse
	case stcErrors.KindNotImplemented:
		return ExitNotImplemented
	case stcErrors.KindValue:
		return ExitValue
	default:
		return ExitFailure
	}
}

// Diagnostic renders err as a single line for stderr.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.Join(strings.Fields(strings.ReplaceAll(err.Error(), "\n", "; ")), " ")
	return "stc: " + msg
}
