package fgaudit

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoValidRoots indicates none of the supplied scan roots exist as
	// directories. This is the only fatal outcome of a scan.
	ErrNoValidRoots = errors.New("no valid module roots")

	// ErrExportFailed indicates the combined table could not be written in
	// either the requested format or the CSV fallback.
	ErrExportFailed = errors.New("export failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrNoValidRoots):
		return ExitNoValidRoots
	case errors.Is(err, ErrExportFailed):
		return ExitExportFailed
	}

	// Cobra reports flag and argument misuse as plain errors.
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "invalid argument") ||
		strings.Contains(errStr, "accepts") && strings.Contains(errStr, "arg(s)") {
		return ExitUsageError
	}

	return ExitGeneralError
}
