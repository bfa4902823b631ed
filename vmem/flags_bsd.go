//go:build freebsd || darwin

package vmem

import "golang.org/x/sys/unix"

// BSD kernels do not charge PROT_NONE anonymous mappings, so no extra map
// flag is needed to make reservations cheap. MADV_FREE lets the kernel
// reclaim the pages lazily under pressure.
const (
	reserveFlags   = unix.MAP_PRIVATE | unix.MAP_ANON
	decommitAdvice = unix.MADV_FREE
)
