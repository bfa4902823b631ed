package memres

import "github.com/joshuapare/arenakit/mem"

// bufferAlignment is coarse enough for the vector ISAs that care, so buffer
// contents can back SIMD kernels without re-alignment.
const bufferAlignment mem.Alignment = 64

// Buffer is a growable byte buffer that draws storage from a Resource fixed
// at construction. Growth doubles the capacity and rounds it to a multiple
// of 64 bytes.
//
// The zero value is not usable; construct with NewBuffer or NewBufferSize.
// A Buffer is not safe for concurrent use.
type Buffer struct {
	res    Resource
	span   mem.Span
	length mem.Size
}

// NewBuffer returns an empty Buffer backed by r. A nil r captures the
// process default at this point; later SetDefault calls do not affect the
// returned buffer.
func NewBuffer(r Resource) *Buffer {
	if r == nil {
		r = Default()
	}
	return &Buffer{res: r}
}

// NewBufferSize returns a zero-filled Buffer of length n backed by r.
func NewBufferSize(r Resource, n mem.Size) *Buffer {
	b := NewBuffer(r)
	b.Resize(n)
	return b
}

// Reserve grows the capacity to at least n bytes, moving the contents if a
// larger span must be allocated. The length and contents are unchanged.
// Reserve panics if the resource cannot supply the storage.
func (b *Buffer) Reserve(n mem.Size) {
	if n < 0 {
		panic("memres: buffer capacity must be non-negative")
	}
	if n <= b.span.Len() {
		return
	}
	if b.res == nil {
		panic("memres: zero Buffer; construct with NewBuffer")
	}
	want, ok := mem.AddSize(n, mem.Size(bufferAlignment)-1)
	if !ok {
		panic("memres: buffer capacity overflow")
	}
	want = mem.RoundDown(want, bufferAlignment)
	if doubled, ok := mem.MulSize(b.span.Len(), 2); ok && doubled > want {
		want = doubled
	}
	next := b.res.Allocate(want, bufferAlignment)
	if next.IsEmpty() {
		panic("memres: resource exhausted")
	}
	copy(next, b.span[:b.length])
	if !b.span.IsEmpty() {
		b.res.Deallocate(b.span)
	}
	b.span = next
}

// Resize sets the length to n, growing the capacity as needed. Bytes added
// past the previous length read as zero.
func (b *Buffer) Resize(n mem.Size) {
	if n < 0 {
		panic("memres: buffer length must be non-negative")
	}
	b.Reserve(n)
	if n > b.length {
		clear(b.span[b.length:n])
	}
	b.length = n
}

// Bytes returns the live contents. The returned span's capacity is clamped
// to its length, so appending to it never writes into the buffer's spare
// capacity. It is valid until the next Reserve, Resize, or Release.
func (b *Buffer) Bytes() mem.Span {
	return b.span[:b.length:b.length]
}

// Len returns the current length in bytes.
func (b *Buffer) Len() mem.Size { return b.length }

// Cap returns the current capacity in bytes.
func (b *Buffer) Cap() mem.Size { return b.span.Len() }

// Release returns the backing storage to the resource and empties the
// buffer. The buffer stays usable; the next growth allocates afresh.
func (b *Buffer) Release() {
	if !b.span.IsEmpty() {
		b.res.Deallocate(b.span)
	}
	b.span = nil
	b.length = 0
}
