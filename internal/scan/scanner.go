// Package scan walks module roots and assembles one FileRecord per regular
// file, combining filesystem metadata, content classification and the
// per-root repository snapshot.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/vvka-141/fgaudit/internal/classify"
	"github.com/vvka-141/fgaudit/internal/fsmeta"
	"github.com/vvka-141/fgaudit/internal/gitstatus"
	"github.com/vvka-141/fgaudit/pkg/fgaudit"
)

// Options controls a Scanner.
type Options struct {
	// NoGit disables repository-status resolution entirely; every record
	// reports all-false repository flags.
	NoGit bool

	// Excludes are doublestar glob patterns matched against each file's
	// slash-separated path relative to the scan root. Matching files
	// produce no record.
	Excludes []string
}

// Scanner scans module roots. One Scanner carries one scan invocation's
// identity; all roots scanned through it share a ScanID.
type Scanner struct {
	logger fgaudit.Logger
	opts   Options
	scanID uuid.UUID
}

// New creates a Scanner.
// Panics if logger is nil.
func New(logger fgaudit.Logger, opts Options) *Scanner {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scanner{
		logger: logger,
		opts:   opts,
		scanID: uuid.New(),
	}
}

// ScanID returns the identity of this scan invocation.
func (s *Scanner) ScanID() uuid.UUID { return s.scanID }

// ScanRoot walks one module root and returns its records sorted by
// (parent, name).
//
// Unreadable entries and files that disappear between enumeration and
// inspection are skipped with a verbose diagnostic; partial visibility
// into a tree never aborts the scan. Only an invalid root (missing or not
// a directory) is an error.
func (s *Scanner) ScanRoot(root string) (fgaudit.ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return fgaudit.ScanResult{}, fmt.Errorf("root directory not found: %s: %w", root, err)
	}
	if !info.IsDir() {
		return fgaudit.ScanResult{}, fmt.Errorf("root is not a directory: %s", root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fgaudit.ScanResult{}, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	if resolved, rerr := filepath.EvalSymlinks(absRoot); rerr == nil {
		absRoot = resolved
	}

	var snap *gitstatus.Snapshot
	if !s.opts.NoGit {
		snap, err = gitstatus.Resolve(absRoot, s.logger)
		if err != nil {
			// Degrade to all-false status rather than losing the scan.
			s.logger.Error("repository status unavailable for %s: %v", absRoot, err)
			snap = nil
		}
	}

	module := filepath.Base(absRoot)
	var records []fgaudit.FileRecord

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Verbose("skipping unreadable entry: %s (%v)", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		// Stat follows symlinks, so a link to a regular file is audited
		// like the file itself and a dangling link is skipped.
		fileInfo, statErr := os.Stat(path)
		if statErr != nil {
			s.logger.Verbose("skipping unreadable entry: %s (%v)", path, statErr)
			return nil
		}
		if !fileInfo.Mode().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			s.logger.Verbose("skipping entry outside root: %s (%v)", path, relErr)
			return nil
		}
		if s.excluded(rel) {
			s.logger.Verbose("excluded by pattern: %s", rel)
			return nil
		}

		records = append(records, s.assemble(path, rel, module, fileInfo, snap))
		return nil
	})
	if walkErr != nil {
		return fgaudit.ScanResult{}, fmt.Errorf("failed to walk %s: %w", absRoot, walkErr)
	}

	fgaudit.SortRecords(records)
	return fgaudit.ScanResult{
		ScanID:  s.scanID,
		Module:  module,
		Root:    absRoot,
		Records: records,
	}, nil
}

// assemble builds the record for one surviving path. Content inspection
// runs only for eligible files; a mid-read failure keeps the counts
// accumulated before it (fail-soft).
func (s *Scanner) assemble(path, rel, module string, info fs.FileInfo, snap *gitstatus.Snapshot) fgaudit.FileRecord {
	meta := fsmeta.FromFileInfo(info)
	name := info.Name()

	var content fgaudit.ContentStats
	if classify.Eligible(name) {
		stats, err := classify.File(path)
		if err != nil {
			s.logger.Verbose("content inspection incomplete for %s: %v", rel, err)
		}
		content = stats
	}

	return fgaudit.FileRecord{
		AbsPath:    path,
		RelPath:    rel,
		Parent:     filepath.Dir(rel),
		Name:       name,
		Ext:        filepath.Ext(name),
		SizeBytes:  meta.SizeBytes,
		ModTime:    fsmeta.Timestamp(meta.ModTime),
		ChangeTime: fsmeta.Timestamp(meta.ChangeTime),
		AccessTime: fsmeta.Timestamp(meta.AccessTime),
		ModeOctal:  meta.ModeOctal(),
		UID:        meta.UID,
		GID:        meta.GID,
		Content:    content,
		Repo:       snap.Status(name),
		Module:     module,
	}
}

func (s *Scanner) excluded(rel string) bool {
	slashRel := filepath.ToSlash(rel)
	for _, pattern := range s.opts.Excludes {
		if ok, err := doublestar.Match(pattern, slashRel); err == nil && ok {
			return true
		}
	}
	return false
}
