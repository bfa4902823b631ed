package vmem

import "errors"

var (
	// ErrTooLarge indicates a reservation request that cannot be expressed
	// on this platform (rounding it to whole pages overflows int).
	ErrTooLarge = errors.New("vmem: reservation too large for platform")

	// ErrNotReserved indicates a span that does not lie within any active
	// reservation of the mapper it was handed to.
	ErrNotReserved = errors.New("vmem: span not within an active reservation")
)
