package arena

import (
	"fmt"

	"github.com/joshuapare/arenakit/mem"
	"github.com/joshuapare/arenakit/vmem"
)

// state is the arena lifecycle tag. The zero value is deliberately not a
// valid state so a zero-value Arena cannot masquerade as a live one.
type state uint8

const (
	stateZero state = iota // not constructed through New
	stateActive
	stateReleased
)

// Arena is a virtual-memory-backed stack allocator. See the package
// documentation for the full contract.
//
// The zero value is not usable; construct with New or NewWithOptions.
type Arena struct {
	mapper vmem.Mapper
	res    mem.Span // whole reservation, fixed at construction
	gran   mem.Size // commit step, power-of-two multiple of the page size

	// cursor is the offset of the next allocation; watermark is one past
	// the committed prefix. Both stay within [0, res.Len()], and an
	// allocation never ends past the watermark.
	cursor    mem.Size
	watermark mem.Size

	state state

	allocs  int64
	commits int64
	resets  int64
}

// New reserves capacity bytes of address space (rounded up to whole pages)
// and returns an empty, active arena. No memory is committed yet.
func New(capacity mem.Size) (*Arena, error) {
	return NewWithOptions(capacity, Options{})
}

// NewWithOptions is New with explicit commit granularity and mapper.
// A non-positive capacity is a programming error and panics; a reservation
// the OS cannot grant is returned as an error.
func NewWithOptions(capacity mem.Size, opts Options) (*Arena, error) {
	if capacity <= 0 {
		panic("arena: capacity must be positive")
	}
	gran := opts.granularity()
	m := opts.mapper()

	res, err := m.Reserve(capacity)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}
	return &Arena{
		mapper: m,
		res:    res,
		gran:   gran,
		state:  stateActive,
	}, nil
}

// Allocate returns a size-byte span aligned to align, committing pages as
// needed. The span is valid until the next Reset or Release.
//
// Failure is atomic: on ErrCapacity or ErrCommitFailed the returned span is
// empty and the arena is exactly as it was before the call. size may be
// zero, yielding an empty span anchored at the aligned cursor without
// committing or consuming anything.
//
// Contract violations panic: align must be a power of two, size must be
// non-negative, and the arena must not have been released.
func (a *Arena) Allocate(size mem.Size, align mem.Alignment) (mem.Span, error) {
	a.ensureActive("Allocate")
	if size < 0 {
		panic("arena: allocation size must be non-negative")
	}
	if !align.IsValid() {
		panic("arena: alignment must be a power of two")
	}

	// Align in absolute address space so alignments coarser than the
	// page size hold for the span's address, not just its offset.
	cur := a.res.Addr() + uintptr(a.cursor)
	addr := mem.RoundUpAddr(cur, align)
	if addr < cur { // wrapped around the address space
		return nil, ErrCapacity
	}
	off := mem.Size(addr - a.res.Addr())

	end, ok := mem.AddSize(off, size)
	if !ok || end > a.res.Len() {
		return nil, ErrCapacity
	}

	if size == 0 {
		s, _ := a.res.Slice(off, 0)
		return s, nil
	}

	if end > a.watermark {
		if err := a.commitTo(end); err != nil {
			return nil, err
		}
	}

	a.cursor = end
	a.allocs++
	s, _ := a.res.Slice(off, size)
	return s, nil
}

// commitTo extends the committed prefix to cover end, rounded up to the
// commit granularity and clamped to the reservation.
func (a *Arena) commitTo(end mem.Size) error {
	newMark := a.res.Len()
	if stepped, ok := mem.AddSize(end, a.gran-1); ok {
		if rounded := mem.RoundDown(stepped, mem.Alignment(a.gran)); rounded < newMark {
			newMark = rounded
		}
	}
	chunk, _ := a.res.Slice(a.watermark, newMark-a.watermark)
	if err := a.mapper.Commit(chunk); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	a.watermark = newMark
	a.commits++
	return nil
}

// Reset rewinds the cursor to the reservation base, invalidating every span
// handed out since construction or the previous Reset. Committed pages are
// retained so the next allocation burst reuses them without fresh commit
// syscalls.
func (a *Arena) Reset() {
	a.ensureActive("Reset")
	a.cursor = 0
	a.resets++
}

// Release returns the reservation to the OS. Every span the arena ever
// handed out is invalid afterwards. Release is idempotent: a second call is
// a no-op. If the mapper fails, the arena stays active so the caller can
// retry.
func (a *Arena) Release() error {
	if a.state == stateReleased {
		return nil
	}
	a.ensureActive("Release")
	if err := a.mapper.Release(a.res); err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	a.state = stateReleased
	a.res = nil
	a.cursor = 0
	a.watermark = 0
	return nil
}

func (a *Arena) ensureActive(op string) {
	switch a.state {
	case stateActive:
	case stateReleased:
		panic("arena: " + op + " on released arena")
	default:
		panic("arena: " + op + " on zero Arena; construct with New")
	}
}
