// Package arena implements a virtual-memory-backed stack allocator: a bump
// allocator over a large, contiguous address-space reservation that commits
// physical pages lazily as the cursor advances.
//
// # Overview
//
// An Arena reserves its whole capacity up front, so every span it hands out
// lives at a stable address for the arena's lifetime; growth never moves
// memory. Physical pages are committed in granularity-sized steps only when
// an allocation crosses the commit watermark, so unused capacity costs
// address space, not memory.
//
// Allocation is a pure bump: align the cursor, check capacity, advance.
// There is no per-allocation metadata and no free list; memory is reclaimed
// in bulk by Reset (which keeps committed pages for the next burst) or
// Release (which returns the whole reservation to the OS).
//
// # Usage
//
//	a, err := arena.New(64 * mem.MiB)
//	if err != nil {
//		return err
//	}
//	defer a.Release()
//
//	buf, err := a.Allocate(4096, 64)
//	if err != nil {
//		return err // capacity exhausted or the OS refused to commit
//	}
//	// ... fill buf ...
//
//	a.Reset() // invalidates buf, keeps committed pages
//
// # Lifecycle
//
// An Arena is constructed Active and stays Active until Release. Spans
// returned by Allocate are borrowed views into the reservation: they are
// valid until the next Reset or Release, and holding one past that point is
// a use-after-free in all but name. Release is idempotent; every other
// operation on a released arena is a programming error and panics.
//
// # Errors and panics
//
// Environmental failure — capacity exhausted (ErrCapacity) or the OS
// refusing to commit pages (ErrCommitFailed) — comes back as an error with
// an empty span and never changes arena state, so a failed call can simply
// be retried smaller. Contract violations (non-power-of-two alignment,
// negative size, use after Release) panic.
//
// # Thread safety
//
// An Arena is not safe for concurrent use. Use one arena per goroutine or
// synchronize externally.
//
// # Related packages
//
//   - github.com/joshuapare/arenakit/vmem: the platform layer arenas commit through
//   - github.com/joshuapare/arenakit/mem: spans, sizes, and alignments
//   - github.com/joshuapare/arenakit/memres: allocator-polymorphic containers
package arena
