//go:build linux

package vmem

import "golang.org/x/sys/unix"

// MAP_NORESERVE keeps reservations from counting against the kernel's
// overcommit accounting; swap is charged when pages are committed.
// MADV_DONTNEED drops pages immediately, so recommitted pages read as zero.
const (
	reserveFlags   = unix.MAP_PRIVATE | unix.MAP_ANON | unix.MAP_NORESERVE
	decommitAdvice = unix.MADV_DONTNEED
)
