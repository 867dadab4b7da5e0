package cli

import (
	"errors"

	"github.com/yaklabco/docblock/pkg/runner"
)

// Exit codes for docblock.
const (
	// ExitSuccess indicates every input parsed.
	ExitSuccess = 0

	// ExitParseErrors indicates at least one input failed to parse.
	ExitParseErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors mapped to exit codes by ExitCode.
var (
	// ErrParseFailed is returned when one or more inputs failed to parse.
	// The failures have already been reported.
	ErrParseFailed = errors.New("parse failed")

	// ErrConfig wraps configuration loading and validation failures.
	ErrConfig = errors.New("configuration error")

	// ErrIO wraps failures reading input or writing output.
	ErrIO = errors.New("i/o error")

	// ErrInternal wraps failures of the run itself.
	ErrInternal = errors.New("internal error")
)

// ExitCodeFromResult determines the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitParseErrors
	}
	return ExitSuccess
}

// ExitCode maps a command error to a process exit code. Errors that carry
// no sentinel come from flag parsing or argument checks.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParseFailed):
		return ExitParseErrors
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrIO):
		return ExitIOError
	case errors.Is(err, ErrInternal):
		return ExitInternalError
	default:
		return ExitInvalidUsage
	}
}
