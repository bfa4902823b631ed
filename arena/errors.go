package arena

import "errors"

var (
	// ErrCapacity indicates the reservation cannot hold the requested
	// block. Capacity is fixed at construction; the arena never grows.
	ErrCapacity = errors.New("arena: virtual capacity exhausted")

	// ErrCommitFailed indicates the OS refused to commit pages for an
	// allocation. The arena is unchanged and stays usable.
	ErrCommitFailed = errors.New("arena: page commit failed")
)
