// Package mem provides the byte-level value types shared by all arenakit
// allocators: non-owning byte spans, sizes, and power-of-two alignments.
//
// A Span is a view over memory owned by someone else (an allocator or the
// caller); it carries no lifetime of its own. The empty span is the canonical
// "no memory" value returned by failed allocations.
package mem

import "unsafe"

// Span is a non-owning view over a contiguous region of raw memory.
//
// The zero value (nil) is the empty span. Spans returned by allocators are
// only valid until the owning allocator is reset or released; holding a span
// past that point is a use-after-free in all but name.
type Span []byte

// SpanOf wraps an existing byte slice as a Span without copying.
func SpanOf(b []byte) Span { return Span(b) }

// Len returns the span's length in bytes.
func (s Span) Len() Size { return Size(len(s)) }

// IsEmpty reports whether the span views no memory.
// Failed allocations return empty spans, so this doubles as the failure check.
func (s Span) IsEmpty() bool { return len(s) == 0 }

// Addr returns the address of the span's first byte, or 0 for the nil span.
func (s Span) Addr() uintptr {
	if s == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))
}

// End returns the address one past the span's last byte.
func (s Span) End() uintptr {
	return s.Addr() + uintptr(len(s))
}

// Slice returns the sub-span [off:off+n] if it lies within s.
// It reports ok = false on any out-of-bounds or overflowing request instead
// of panicking, so callers can treat bad offsets as data.
func (s Span) Slice(off, n Size) (Span, bool) {
	if off < 0 || n < 0 || off > s.Len() {
		return nil, false
	}
	end, ok := AddSize(off, n)
	if !ok || end > s.Len() {
		return nil, false
	}
	return s[off:end:end], true
}

// Overlaps reports whether s and o view any byte in common.
// Empty spans overlap nothing.
func (s Span) Overlaps(o Span) bool {
	if s.IsEmpty() || o.IsEmpty() {
		return false
	}
	return s.Addr() < o.End() && o.Addr() < s.End()
}

// Contains reports whether o lies entirely within s.
// Empty spans contain nothing and are contained by nothing.
func (s Span) Contains(o Span) bool {
	if s.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.Addr() >= s.Addr() && o.End() <= s.End()
}

// IsAlignedTo reports whether the span's address is aligned to a.
func (s Span) IsAlignedTo(a Alignment) bool {
	return IsAlignedAddr(s.Addr(), a)
}
