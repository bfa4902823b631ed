package vmem

import (
	"math"
	"os"

	"github.com/joshuapare/arenakit/mem"
)

var pageSize = mem.Size(os.Getpagesize())

// PageSize returns the system page size.
func PageSize() mem.Size { return pageSize }

// PageAlignment returns the system page size as an alignment.
func PageAlignment() mem.Alignment { return mem.Alignment(pageSize) }

// Mapper is the virtual-memory surface allocators build on.
//
// Implementations:
//   - System(): the OS-backed mapper (mmap/mprotect on Unix, VirtualAlloc
//     on Windows, emulated on everything else)
//   - CountingMapper: instrumentation wrapper for tests and tooling
//
// The spans a Mapper hands out and accepts follow one rule: Reserve returns
// the whole reservation, Commit/Decommit take page-aligned sub-ranges of
// it, and Release takes the whole reservation back exactly as returned.
type Mapper interface {
	// Reserve claims n bytes of address space, rounded up to the page
	// size. The returned span has the rounded length and no access
	// rights; reading or writing it before Commit faults.
	Reserve(n mem.Size) (mem.Span, error)

	// Commit grants read/write access to a page-aligned sub-range of a
	// reservation. Freshly committed pages read as zero.
	Commit(s mem.Span) error

	// Decommit discards the contents of a page-aligned sub-range and
	// revokes access. The range stays reserved and may be committed
	// again later.
	Decommit(s mem.Span) error

	// Release returns a reservation to the OS. s must be exactly the
	// span returned by Reserve. Every span into the reservation is
	// invalid afterwards.
	Release(s mem.Span) error
}

// System returns the Mapper backed by the operating system.
func System() Mapper { return sysMapper }

// Reserve claims address space from the system mapper.
func Reserve(n mem.Size) (mem.Span, error) { return sysMapper.Reserve(n) }

// Commit grants access to a page range via the system mapper.
func Commit(s mem.Span) error { return sysMapper.Commit(s) }

// Decommit discards a page range via the system mapper.
func Decommit(s mem.Span) error { return sysMapper.Decommit(s) }

// Release returns a reservation to the OS via the system mapper.
func Release(s mem.Span) error { return sysMapper.Release(s) }

// reserveSize validates a reservation request and rounds it up to the page
// size. Requesting a non-positive size is a programming error; a size whose
// rounding overflows the platform int is reported as ErrTooLarge so callers
// can treat it like any other exhaustion.
func reserveSize(n mem.Size) (mem.Size, error) {
	if n <= 0 {
		panic("vmem: reserve size must be positive")
	}
	r, ok := mem.AddSize(n, pageSize-1)
	if !ok || r > math.MaxInt {
		return 0, ErrTooLarge
	}
	return mem.RoundDown(r, PageAlignment()), nil
}

// checkPageRange panics unless s starts and ends on page boundaries.
// Misaligned ranges are programming errors, not runtime conditions: the OS
// would silently widen them to whole pages, changing more memory than the
// caller asked about.
func checkPageRange(op string, s mem.Span) {
	if !mem.IsAlignedAddr(s.Addr(), PageAlignment()) || !mem.IsAligned(s.Len(), PageAlignment()) {
		panic("vmem: " + op + " range must be page-aligned")
	}
}
