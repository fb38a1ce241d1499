// Package apperrors defines the error kinds surfaced by relbump and the
// exit codes they map to.
package apperrors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the relbump binary.
const (
	ExitOK    = 0
	ExitError = 1
)

// ArgumentError reports missing or invalid command-line input. Usage, when
// set, is printed after the cause.
type ArgumentError struct {
	Msg   string
	Usage string
	Err   error
}

func (e *ArgumentError) Error() string {
	var msg string
	switch {
	case e.Msg != "" && e.Err != nil:
		msg = fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Err != nil:
		msg = e.Err.Error()
	default:
		msg = e.Msg
	}
	if e.Usage != "" {
		msg += "\n\nUsage: " + e.Usage
	}
	return msg
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// NewArgumentError returns an ArgumentError for msg and an optional cause,
// followed by usage. An empty msg shows the cause alone.
func NewArgumentError(msg, usage string, err error) *ArgumentError {
	return &ArgumentError{Msg: msg, Usage: usage, Err: err}
}

// ParseError reports a malformed manifest or version string.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a missing file or one too short for its expected structure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsArgumentError reports whether err is, or wraps, an ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// IsParseError reports whether err is, or wraps, a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsIOError reports whether err is, or wraps, an IOError.
func IsIOError(err error) bool {
	var ie *IOError
	return errors.As(err, &ie)
}

// Hint returns a follow-up suggestion for err, or "" when there is none.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case IsArgumentError(err):
		return "Run 'relbump --help' for the full list of flags."
	case IsParseError(err), IsIOError(err):
		return "Run 'relbump doctor' to check the configured files."
	default:
		return ""
	}
}

// ExitCode maps an error to the process exit code.
// Every error is fatal, so anything non-nil exits with ExitError.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return ExitError
}
