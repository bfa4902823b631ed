package arena

import "github.com/joshuapare/arenakit/mem"

// Stats is a snapshot of an arena's memory accounting and operation counts.
type Stats struct {
	Reserved  mem.Size // address space owned by the arena
	Committed mem.Size // prefix backed by physical pages
	Used      mem.Size // bytes consumed since the last Reset, padding included

	Allocs  int64 // successful allocations since construction
	Commits int64 // commit calls issued to the mapper
	Resets  int64
}

// Stats returns a snapshot of the arena's counters. It is valid on released
// arenas too, where the sizes read zero.
func (a *Arena) Stats() Stats {
	return Stats{
		Reserved:  a.res.Len(),
		Committed: a.watermark,
		Used:      a.cursor,
		Allocs:    a.allocs,
		Commits:   a.commits,
		Resets:    a.resets,
	}
}

// Capacity returns the reservation size: the hard allocation limit fixed at
// construction.
func (a *Arena) Capacity() mem.Size { return a.res.Len() }

// Committed returns the size of the committed prefix.
func (a *Arena) Committed() mem.Size { return a.watermark }

// Used returns the bytes consumed since the last Reset, padding included.
func (a *Arena) Used() mem.Size { return a.cursor }

// Remaining returns how many bytes the arena can still hand out, before any
// alignment padding future allocations may add.
func (a *Arena) Remaining() mem.Size { return a.res.Len() - a.cursor }

// Owns reports whether s lies within the arena's reservation. Empty spans
// belong to nothing.
func (a *Arena) Owns(s mem.Span) bool { return a.res.Contains(s) }
