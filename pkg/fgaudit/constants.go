package fgaudit

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Scan (and export, if requested) completed
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration
	ExitNoValidRoots = 11 // None of the supplied roots is a directory
	ExitExportFailed = 12 // Neither parquet nor the CSV fallback could be written
)

const (
	// DefaultRoot is the module directory scanned when no roots are given
	// on the command line, in fgaudit.yaml or via FGAUDIT_ROOTS.
	DefaultRoot = "audittest.4gm"

	// PreviewLimit is the maximum number of records shown in the per-root
	// console preview.
	PreviewLimit = 20
)
