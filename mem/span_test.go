package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSpan_Empty tests the nil span's behavior as the "no memory" value.
func TestSpan_Empty(t *testing.T) {
	var s Span
	assert.True(t, s.IsEmpty())
	assert.Equal(t, Size(0), s.Len())
	assert.Equal(t, uintptr(0), s.Addr())
	assert.Equal(t, uintptr(0), s.End())
}

// TestSpan_AddrEnd tests that Addr and End track the backing array.
func TestSpan_AddrEnd(t *testing.T) {
	buf := make([]byte, 64)
	s := SpanOf(buf)

	require.False(t, s.IsEmpty())
	assert.Equal(t, Size(64), s.Len())
	assert.Equal(t, s.Addr()+64, s.End())

	// A sub-slice's address advances with the offset.
	sub := SpanOf(buf[16:32])
	assert.Equal(t, s.Addr()+16, sub.Addr())
	assert.Equal(t, s.Addr()+32, sub.End())
}

// TestSpan_Slice tests bounds-checked sub-span extraction.
func TestSpan_Slice(t *testing.T) {
	s := SpanOf(make([]byte, 16))

	sub, ok := s.Slice(4, 8)
	require.True(t, ok)
	assert.Equal(t, Size(8), sub.Len())
	assert.Equal(t, s.Addr()+4, sub.Addr())

	// Zero-length slices are valid anywhere inside the span, including the end.
	sub, ok = s.Slice(16, 0)
	require.True(t, ok)
	assert.True(t, sub.IsEmpty())

	_, ok = s.Slice(17, 0)
	assert.False(t, ok, "offset past the end should fail")
	_, ok = s.Slice(8, 9)
	assert.False(t, ok, "slice extending past the end should fail")
	_, ok = s.Slice(-1, 4)
	assert.False(t, ok, "negative offset should fail")
	_, ok = s.Slice(4, -1)
	assert.False(t, ok, "negative length should fail")
}

// TestSpan_SliceCapClamped tests that sub-spans cannot grow back into the
// parent's tail via append.
func TestSpan_SliceCapClamped(t *testing.T) {
	s := SpanOf(make([]byte, 16))

	sub, ok := s.Slice(0, 8)
	require.True(t, ok)
	assert.Equal(t, 8, cap(sub), "sub-span capacity should equal its length")

	// Appending must reallocate instead of writing into s[8:].
	s[8] = 0xAA
	grown := append(sub, 0xBB)
	assert.Equal(t, byte(0xAA), s[8], "append should not write into the parent span")
	assert.Equal(t, byte(0xBB), grown[8])
}

// TestSpan_Overlaps tests byte-range intersection.
func TestSpan_Overlaps(t *testing.T) {
	buf := make([]byte, 64)
	a := SpanOf(buf[0:16])
	b := SpanOf(buf[8:24])
	c := SpanOf(buf[16:32])

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c), "adjacent spans share no byte")
	assert.False(t, c.Overlaps(a))

	var empty Span
	assert.False(t, a.Overlaps(empty))
	assert.False(t, empty.Overlaps(a))
	assert.False(t, empty.Overlaps(empty))
}

// TestSpan_Contains tests whole-range containment.
func TestSpan_Contains(t *testing.T) {
	buf := make([]byte, 64)
	outer := SpanOf(buf)
	inner := SpanOf(buf[8:24])
	straddling := SpanOf(buf[56:64])

	assert.True(t, outer.Contains(inner))
	assert.True(t, outer.Contains(outer))
	assert.True(t, outer.Contains(straddling))
	assert.False(t, inner.Contains(outer))

	other := SpanOf(make([]byte, 8))
	assert.False(t, outer.Contains(other))

	var empty Span
	assert.False(t, outer.Contains(empty))
	assert.False(t, empty.Contains(inner))
}

// TestSpan_IsAlignedTo tests address alignment checks.
func TestSpan_IsAlignedTo(t *testing.T) {
	buf := make([]byte, 64)
	s := SpanOf(buf)

	// Byte alignment always holds.
	assert.True(t, s.IsAlignedTo(1))
	assert.True(t, SpanOf(buf[1:]).IsAlignedTo(1))

	// Find an 8-aligned offset inside the buffer and check both sides.
	off := RoundUpAddr(s.Addr(), 8) - s.Addr()
	aligned := SpanOf(buf[off : off+8])
	assert.True(t, aligned.IsAlignedTo(8))
	assert.False(t, SpanOf(buf[off+1:off+8]).IsAlignedTo(8))
}
