package fgaudit

import (
	"sort"

	"github.com/google/uuid"
)

// FileRecord is one row of the audit table: filesystem metadata, content
// line statistics and repository status for a single regular file.
type FileRecord struct {
	// AbsPath is the absolute path of the file.
	AbsPath string

	// RelPath is the path relative to the resolved scan root.
	RelPath string

	// Parent is the file's parent directory relative to the scan root.
	// Files directly under the root have Parent ".".
	Parent string

	// Name is the base file name.
	Name string

	// Ext is the file extension including the leading dot, or "".
	Ext string

	// SizeBytes is the file size as reported by stat.
	SizeBytes int64

	// ModTime, ChangeTime and AccessTime are calendar timestamps in
	// RFC 3339 form, not raw epoch numbers.
	ModTime    string
	ChangeTime string
	AccessTime string

	// ModeOctal holds the permission bits as an octal string, e.g. "0644".
	ModeOctal string

	// UID and GID are the numeric owner and group identifiers.
	UID uint32
	GID uint32

	// Content holds line statistics. All zero when the file is not
	// eligible for content inspection.
	Content ContentStats

	// Repo holds the repository status flags. All false when no enclosing
	// repository exists or resolution was disabled.
	Repo RepoStatus

	// Module is the base name of the scan root this file was found under.
	Module string
}

// ContentStats holds line-classification counts and statement pattern
// counters for an eligible file. Counters are heuristic line-level matches,
// not parse-verified constructs.
type ContentStats struct {
	TotalLines   int
	BlankLines   int
	CommentLines int

	FunctionDefs int
	PrepareStmts int
	ExecuteStmts int
	RunStmts     int
	CallStmts    int
}

// RepoStatus holds a file's relationship to the enclosing repository.
type RepoStatus struct {
	// Tracked reports whether the file is present in the last commit.
	Tracked bool

	// Modified reports whether the working copy differs from the index.
	Modified bool

	// Staged reports whether the index differs from the last commit.
	Staged bool
}

// ScanResult contains all records produced for one scan root.
type ScanResult struct {
	// ScanID identifies the scan invocation that produced this result.
	ScanID uuid.UUID

	// Module is the base name of the scan root.
	Module string

	// Root is the resolved absolute path of the scan root.
	Root string

	// Records are sorted by (Parent, Name).
	Records []FileRecord
}

// SortRecords orders records by parent directory then file name so repeated
// scans of an unmodified tree produce identical tables.
func SortRecords(records []FileRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Parent != records[j].Parent {
			return records[i].Parent < records[j].Parent
		}
		return records[i].Name < records[j].Name
	})
}
