//go:build windows

package vmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/joshuapare/arenakit/mem"
)

// mapper is the Windows implementation over VirtualAlloc/VirtualFree, which
// expose the reserve/commit split directly.
type mapper struct{}

var sysMapper Mapper = mapper{}

// Reserve claims n bytes (rounded up to whole pages) of inaccessible
// address space. MEM_RESERVE commits nothing; the kernel only hands out a
// range of the process address space.
func (mapper) Reserve(n mem.Size) (mem.Span, error) {
	r, err := reserveSize(n)
	if err != nil {
		return nil, err
	}
	base, err := windows.VirtualAlloc(0, uintptr(r), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, fmt.Errorf("vmem: reserve %s: %w", r, err)
	}
	return mem.SpanOf(unsafe.Slice((*byte)(unsafe.Pointer(base)), int(r))), nil
}

// Commit backs a page-aligned sub-range of a reservation with zero-filled,
// read/write pages.
func (mapper) Commit(s mem.Span) error {
	if s.IsEmpty() {
		return nil
	}
	checkPageRange("commit", s)
	if _, err := windows.VirtualAlloc(s.Addr(), uintptr(s.Len()), windows.MEM_COMMIT, windows.PAGE_READWRITE); err != nil {
		return fmt.Errorf("vmem: commit %s at %#x: %w", s.Len(), s.Addr(), err)
	}
	return nil
}

// Decommit returns a page-aligned sub-range to the reserved-only state,
// discarding its contents.
func (mapper) Decommit(s mem.Span) error {
	if s.IsEmpty() {
		return nil
	}
	checkPageRange("decommit", s)
	if err := windows.VirtualFree(s.Addr(), uintptr(s.Len()), windows.MEM_DECOMMIT); err != nil {
		return fmt.Errorf("vmem: decommit %s at %#x: %w", s.Len(), s.Addr(), err)
	}
	return nil
}

// Release frees the whole reservation. MEM_RELEASE requires the base
// address of the original reservation and a zero size.
func (mapper) Release(s mem.Span) error {
	if s.IsEmpty() {
		return nil
	}
	if err := windows.VirtualFree(s.Addr(), 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("vmem: release %s at %#x: %w", s.Len(), s.Addr(), err)
	}
	return nil
}
