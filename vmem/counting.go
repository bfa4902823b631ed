package vmem

import (
	"sync/atomic"

	"github.com/joshuapare/arenakit/mem"
)

// CountingMapper wraps a Mapper with operation and byte counters. It is the
// instrumentation seam for tests and tooling: wrap the system mapper, hand
// the wrapper to an allocator, and read Stats to see exactly what the
// allocator asked the OS for.
//
// Counters are cumulative and only count operations that succeeded. All
// methods are safe for concurrent use when the wrapped Mapper is.
type CountingMapper struct {
	m Mapper

	reserves  atomic.Int64
	commits   atomic.Int64
	decommits atomic.Int64
	releases  atomic.Int64

	reservedBytes    atomic.Int64
	committedBytes   atomic.Int64
	decommittedBytes atomic.Int64
}

var _ Mapper = (*CountingMapper)(nil)

// MapperStats is a point-in-time snapshot of a CountingMapper's counters.
type MapperStats struct {
	Reserves  int64
	Commits   int64
	Decommits int64
	Releases  int64

	// Cumulative byte totals across all successful operations.
	ReservedBytes    mem.Size
	CommittedBytes   mem.Size
	DecommittedBytes mem.Size
}

// NewCounting wraps m with counters. A nil m wraps the system mapper.
func NewCounting(m Mapper) *CountingMapper {
	if m == nil {
		m = System()
	}
	return &CountingMapper{m: m}
}

// Unwrap returns the wrapped Mapper.
func (c *CountingMapper) Unwrap() Mapper { return c.m }

// Stats returns a snapshot of the counters.
func (c *CountingMapper) Stats() MapperStats {
	return MapperStats{
		Reserves:         c.reserves.Load(),
		Commits:          c.commits.Load(),
		Decommits:        c.decommits.Load(),
		Releases:         c.releases.Load(),
		ReservedBytes:    mem.Size(c.reservedBytes.Load()),
		CommittedBytes:   mem.Size(c.committedBytes.Load()),
		DecommittedBytes: mem.Size(c.decommittedBytes.Load()),
	}
}

func (c *CountingMapper) Reserve(n mem.Size) (mem.Span, error) {
	s, err := c.m.Reserve(n)
	if err == nil {
		c.reserves.Add(1)
		c.reservedBytes.Add(int64(s.Len()))
	}
	return s, err
}

func (c *CountingMapper) Commit(s mem.Span) error {
	err := c.m.Commit(s)
	if err == nil {
		c.commits.Add(1)
		c.committedBytes.Add(int64(s.Len()))
	}
	return err
}

func (c *CountingMapper) Decommit(s mem.Span) error {
	err := c.m.Decommit(s)
	if err == nil {
		c.decommits.Add(1)
		c.decommittedBytes.Add(int64(s.Len()))
	}
	return err
}

func (c *CountingMapper) Release(s mem.Span) error {
	err := c.m.Release(s)
	if err == nil {
		c.releases.Add(1)
	}
	return err
}
