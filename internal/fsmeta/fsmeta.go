// Package fsmeta extracts raw filesystem metadata for a single file.
package fsmeta

import (
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Meta holds the filesystem attributes of one regular file.
type Meta struct {
	SizeBytes  int64
	ModTime    time.Time
	ChangeTime time.Time
	AccessTime time.Time
	Mode       fs.FileMode
	UID        uint32
	GID        uint32
}

// Extract stats the file at path and returns its metadata.
// Change time, access time and ownership come from the platform stat
// structure where available; platforms without them fall back to the
// modification time and zero IDs.
func Extract(path string) (Meta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Meta{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return FromFileInfo(info), nil
}

// FromFileInfo builds Meta from an already-fetched FileInfo, avoiding a
// second stat call when the walker has one in hand.
func FromFileInfo(info fs.FileInfo) Meta {
	m := Meta{
		SizeBytes:  info.Size(),
		ModTime:    info.ModTime(),
		ChangeTime: info.ModTime(),
		AccessTime: info.ModTime(),
		Mode:       info.Mode(),
	}
	fillPlatform(&m, info)
	return m
}

// ModeOctal renders the permission bits as a four-digit octal string,
// e.g. "0644".
func (m Meta) ModeOctal() string {
	return fmt.Sprintf("%04o", m.Mode.Perm())
}

// Timestamp renders t as an RFC 3339 calendar timestamp.
func Timestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
