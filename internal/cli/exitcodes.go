package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/lineage/internal/familytree"
	"github.com/thenoetrevino/lineage/internal/services/settings"
	"github.com/thenoetrevino/lineage/internal/validation"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures, or any error that
	// doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing arguments, invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested member was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Corrupt snapshots or input that cannot be parsed.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid field values, duplicate names, moves that would
	// place a member beneath its own descendants.
	ExitValidation = 5
)

// ErrUsage marks errors caused by how the command was invoked
var ErrUsage = errors.New("usage error")

// CommandError carries the process exit code for a failed command
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Usagef builds a usage error
func Usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// ExitCodeFor maps an error to the exit code the process should end with
func ExitCodeFor(err error) int {
	var exitErr *CommandError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, familytree.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, familytree.ErrCorrupt):
		return ExitDataErr
	case errors.Is(err, validation.ErrInvalid),
		errors.Is(err, familytree.ErrAlreadyExists),
		errors.Is(err, familytree.ErrCycleDetected),
		errors.Is(err, familytree.ErrRootRelationship),
		errors.Is(err, settings.ErrUnknownSetting):
		return ExitValidation
	default:
		return ExitError
	}
}

// ErrorCode is the machine readable code reported in JSON error output
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUsage):
		return "USAGE_ERROR"
	case errors.Is(err, familytree.ErrNotFound):
		return "MEMBER_NOT_FOUND"
	case errors.Is(err, familytree.ErrAlreadyExists):
		return "MEMBER_EXISTS"
	case errors.Is(err, familytree.ErrCycleDetected):
		return "CYCLE_DETECTED"
	case errors.Is(err, familytree.ErrRootRelationship):
		return "ROOT_RELATIONSHIP"
	case errors.Is(err, familytree.ErrCorrupt):
		return "CORRUPT_DATA"
	case errors.Is(err, settings.ErrUnknownSetting):
		return "UNKNOWN_SETTING"
	case errors.Is(err, validation.ErrInvalid):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
