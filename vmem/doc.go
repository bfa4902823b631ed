// Package vmem exposes the operating system's virtual-memory primitives:
// reserving address space without backing it, committing and decommitting
// page ranges inside a reservation, and releasing reservations.
//
// # Lifecycle
//
// Reserve claims a contiguous run of address space with no access rights
// and, where the platform allows, no charge against physical memory or
// swap. Commit grants read/write access to a page-aligned sub-range; this
// is the point where physical backing is paid for. Decommit discards a
// range's contents and revokes access while keeping the address range
// reserved. Release returns the whole reservation to the OS and implies
// decommit of anything still committed.
//
// All four operations report environmental failure as an error return; the
// package never terminates the process on its own. Passing a range that is
// not page-aligned is a programming error and panics.
//
// # Mapper
//
// The Mapper interface is the seam between allocators and the platform.
// System returns the real OS-backed implementation; CountingMapper wraps
// any Mapper with operation and byte counters for tests and tooling.
//
// On platforms without usable virtual-memory syscalls the package falls
// back to ordinary heap allocations with emulated commit bookkeeping, so
// allocators built on Mapper behave identically everywhere.
package vmem
