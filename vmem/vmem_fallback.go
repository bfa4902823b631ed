//go:build !linux && !freebsd && !darwin && !windows

package vmem

import (
	"fmt"
	"sync"

	"github.com/joshuapare/arenakit/mem"
)

// heapMapper emulates the reserve/commit lifecycle on ordinary heap slices
// for platforms without usable virtual-memory syscalls. Each reservation is
// over-allocated so the visible span starts on a page boundary, keeping the
// page-alignment contract identical to the real mappers. Commit cannot
// grant anything (heap memory is always accessible) but the ledger still
// enforces that ranges lie inside a live reservation, and Decommit zeroes
// the range so discarded contents do not linger.
type heapMapper struct {
	mu  sync.Mutex
	rsv map[uintptr]*heapReservation
}

type heapReservation struct {
	buf       []byte      // keeps the backing array alive and pinned
	span      mem.Span    // page-aligned view handed to the caller
	committed []pageRange // offsets relative to span
}

var sysMapper Mapper = &heapMapper{rsv: make(map[uintptr]*heapReservation)}

func (m *heapMapper) Reserve(n mem.Size) (mem.Span, error) {
	r, err := reserveSize(n)
	if err != nil {
		return nil, err
	}
	pad, ok := mem.AddSize(r, PageSize()-1)
	if !ok {
		return nil, ErrTooLarge
	}
	buf := make([]byte, pad)
	base := mem.SpanOf(buf).Addr()
	off := mem.Size(mem.RoundUpAddr(base, PageAlignment()) - base)
	span, ok := mem.SpanOf(buf).Slice(off, r)
	if !ok {
		return nil, ErrTooLarge
	}

	m.mu.Lock()
	m.rsv[span.Addr()] = &heapReservation{buf: buf, span: span}
	m.mu.Unlock()
	return span, nil
}

func (m *heapMapper) Commit(s mem.Span) error {
	if s.IsEmpty() {
		return nil
	}
	checkPageRange("commit", s)
	m.mu.Lock()
	defer m.mu.Unlock()
	rsv := m.owner(s)
	if rsv == nil {
		return fmt.Errorf("vmem: commit %s at %#x: %w", s.Len(), s.Addr(), ErrNotReserved)
	}
	off := mem.Size(s.Addr() - rsv.span.Addr())
	rsv.committed = insertRange(rsv.committed, pageRange{off: off, n: s.Len()})
	return nil
}

func (m *heapMapper) Decommit(s mem.Span) error {
	if s.IsEmpty() {
		return nil
	}
	checkPageRange("decommit", s)
	m.mu.Lock()
	defer m.mu.Unlock()
	rsv := m.owner(s)
	if rsv == nil {
		return fmt.Errorf("vmem: decommit %s at %#x: %w", s.Len(), s.Addr(), ErrNotReserved)
	}
	clear(s)
	off := mem.Size(s.Addr() - rsv.span.Addr())
	rsv.committed = removeRange(rsv.committed, pageRange{off: off, n: s.Len()})
	return nil
}

func (m *heapMapper) Release(s mem.Span) error {
	if s.IsEmpty() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rsv, ok := m.rsv[s.Addr()]
	if !ok || rsv.span.Len() != s.Len() {
		return fmt.Errorf("vmem: release %s at %#x: %w", s.Len(), s.Addr(), ErrNotReserved)
	}
	delete(m.rsv, s.Addr())
	return nil
}

// owner returns the reservation containing s, or nil. Caller holds mu.
func (m *heapMapper) owner(s mem.Span) *heapReservation {
	for _, rsv := range m.rsv {
		if rsv.span.Contains(s) {
			return rsv
		}
	}
	return nil
}
