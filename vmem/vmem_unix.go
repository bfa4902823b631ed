//go:build linux || freebsd || darwin

package vmem

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/arenakit/mem"
)

// mapper is the Unix implementation. It is stateless: the kernel tracks the
// mappings, so every method works directly on the span it is given.
type mapper struct{}

var sysMapper Mapper = mapper{}

// Reserve maps n bytes (rounded up to whole pages) of private, anonymous,
// inaccessible address space. Nothing is committed: the mapping carries
// PROT_NONE until Commit grants access, so it costs address space only.
func (mapper) Reserve(n mem.Size) (mem.Span, error) {
	r, err := reserveSize(n)
	if err != nil {
		return nil, err
	}
	b, err := unix.Mmap(-1, 0, int(r), unix.PROT_NONE, reserveFlags)
	if err != nil {
		return nil, fmt.Errorf("vmem: reserve %s: %w", r, err)
	}
	return mem.SpanOf(b), nil
}

// Commit grants read/write access to a page-aligned sub-range of a
// reservation. Physical backing is charged here, not at Reserve; the kernel
// zero-fills each page on first touch.
func (mapper) Commit(s mem.Span) error {
	if s.IsEmpty() {
		return nil
	}
	checkPageRange("commit", s)
	if err := unix.Mprotect(s, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("vmem: commit %s at %#x: %w", s.Len(), s.Addr(), err)
	}
	return nil
}

// Decommit revokes access to a page-aligned sub-range and tells the kernel
// the contents are disposable. The address range stays reserved; committing
// it again yields fresh pages.
func (mapper) Decommit(s mem.Span) error {
	if s.IsEmpty() {
		return nil
	}
	checkPageRange("decommit", s)
	if err := unix.Mprotect(s, unix.PROT_NONE); err != nil {
		return fmt.Errorf("vmem: decommit %s at %#x: mprotect: %w", s.Len(), s.Addr(), err)
	}
	if err := unix.Madvise(s, decommitAdvice); err != nil {
		return fmt.Errorf("vmem: decommit %s at %#x: madvise: %w", s.Len(), s.Addr(), err)
	}
	return nil
}

// Release unmaps the whole reservation. s must be exactly the span returned
// by Reserve: munmap accepts any page-aligned range, so the kernel cannot
// catch a sub-range or an already released span here. Lifecycle guards
// belong to the owner of the reservation.
func (mapper) Release(s mem.Span) error {
	if s.IsEmpty() {
		return nil
	}
	if err := unix.Munmap(s); err != nil {
		return fmt.Errorf("vmem: release %s at %#x: %w", s.Len(), s.Addr(), err)
	}
	return nil
}
