//go:build linux

package fsmeta

import (
	"io/fs"
	"syscall"
	"time"
)

// fillPlatform copies change time, access time and ownership out of the
// raw stat structure. Sys() may be nil for synthetic FileInfo values
// (in-memory test filesystems); those keep the fallback values.
func fillPlatform(m *Meta, info fs.FileInfo) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	m.ChangeTime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	m.AccessTime = time.Unix(st.Atim.Sec, st.Atim.Nsec)
	m.UID = st.Uid
	m.GID = st.Gid
}
