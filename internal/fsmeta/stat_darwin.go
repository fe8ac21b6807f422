//go:build darwin

package fsmeta

import (
	"io/fs"
	"syscall"
	"time"
)

func fillPlatform(m *Meta, info fs.FileInfo) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	m.ChangeTime = time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
	m.AccessTime = time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
	m.UID = st.Uid
	m.GID = st.Gid
}
