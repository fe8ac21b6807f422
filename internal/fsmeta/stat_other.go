//go:build !linux && !darwin

package fsmeta

import "io/fs"

// Platforms without a POSIX stat structure keep the fallback values:
// change and access times mirror the modification time, ownership is zero.
func fillPlatform(m *Meta, info fs.FileInfo) {}
