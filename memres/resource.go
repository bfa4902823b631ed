// Package memres abstracts the allocation strategy containers draw from.
//
// A Resource hands out aligned byte spans without revealing how they are
// obtained. Containers capture a Resource at construction and stay pinned to
// it for their lifetime, so replacing the process default with SetDefault
// never migrates memory already in use. Two Resource values denote the same
// resource exactly when they compare equal.
//
// Heap is the Go-runtime-backed resource and the initial process default.
package memres

import (
	"github.com/joshuapare/arenakit/mem"
)

// Resource is the allocation capability containers are parameterized over.
//
// Implementations are not required to be safe for concurrent use unless
// documented otherwise. Heap is concurrency-safe.
type Resource interface {
	// Allocate returns a span of exactly size bytes whose base address is a
	// multiple of align. It returns an empty span when the resource cannot
	// satisfy the request. A zero size yields an empty span without error.
	//
	// Allocate panics if size is negative or align is not a power of two.
	Allocate(size mem.Size, align mem.Alignment) mem.Span

	// Deallocate returns a span previously obtained from Allocate on this
	// resource. Passing a span obtained elsewhere is a contract violation.
	// Deallocating an empty span is a no-op.
	Deallocate(s mem.Span)
}

// Heap allocates from the Go runtime heap. Alignments coarser than the
// runtime's natural alignment are honored by over-allocating and slicing at
// the first aligned byte. Deallocate is a no-op: the garbage collector
// reclaims a span once all references to it drop.
type Heap struct{}

var _ Resource = Heap{}

// Allocate returns a zeroed span of size bytes aligned to align.
func (Heap) Allocate(size mem.Size, align mem.Alignment) mem.Span {
	if size < 0 {
		panic("memres: allocation size must be non-negative")
	}
	if !align.IsValid() {
		panic("memres: alignment must be a power of two")
	}
	padded, ok := mem.AddSize(size, mem.Size(align))
	if !ok {
		return nil
	}
	buf := make([]byte, padded)
	base := mem.Span(buf).Addr()
	shift := mem.Size(mem.RoundUpAddr(base, align) - base)
	return mem.Span(buf[shift : size+shift : size+shift])
}

// Deallocate is a no-op.
func (Heap) Deallocate(mem.Span) {}
