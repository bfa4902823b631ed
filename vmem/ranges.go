package vmem

import (
	"sort"

	"github.com/joshuapare/arenakit/mem"
)

// pageRange is a half-open [off, off+n) byte range relative to a
// reservation base. The fallback mapper keeps its committed ledger as a
// sorted, non-overlapping slice of these.
type pageRange struct {
	off, n mem.Size
}

func (r pageRange) end() mem.Size { return r.off + r.n }

// insertRange adds r to the set, merging overlapping and adjacent ranges.
// Returns a new sorted, non-overlapping slice.
func insertRange(rs []pageRange, r pageRange) []pageRange {
	if r.n <= 0 {
		return rs
	}
	all := make([]pageRange, 0, len(rs)+1)
	all = append(all, rs...)
	all = append(all, r)

	sort.Slice(all, func(i, j int) bool {
		return all[i].off < all[j].off
	})

	merged := make([]pageRange, 0, len(all))
	current := all[0]
	for _, next := range all[1:] {
		if next.off <= current.end() {
			if next.end() > current.end() {
				current.n = next.end() - current.off
			}
		} else {
			merged = append(merged, current)
			current = next
		}
	}
	return append(merged, current)
}

// removeRange cuts r out of the set, splitting any range that straddles a
// cut boundary. Ranges that never overlapped r are kept as-is.
func removeRange(rs []pageRange, r pageRange) []pageRange {
	if r.n <= 0 {
		return rs
	}
	out := make([]pageRange, 0, len(rs)+1)
	for _, cur := range rs {
		if cur.end() <= r.off || cur.off >= r.end() {
			out = append(out, cur)
			continue
		}
		if cur.off < r.off {
			out = append(out, pageRange{off: cur.off, n: r.off - cur.off})
		}
		if cur.end() > r.end() {
			out = append(out, pageRange{off: r.end(), n: cur.end() - r.end()})
		}
	}
	return out
}

// rangesTotal sums the lengths of all ranges in the set.
func rangesTotal(rs []pageRange) mem.Size {
	var total mem.Size
	for _, r := range rs {
		total += r.n
	}
	return total
}
