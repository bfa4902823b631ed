package mem

import (
	"fmt"
	"math"
)

// Size is a count of bytes.
type Size int64

// Common byte quantities.
const (
	Byte Size = 1
	KiB       = 1024 * Byte
	MiB       = 1024 * KiB
	GiB       = 1024 * MiB
)

// String renders the size in the largest binary unit that keeps the value
// readable, e.g. 4096 -> "4.0 KiB".
func (s Size) String() string {
	neg := ""
	v := s
	if v < 0 {
		neg = "-"
		v = -v
	}
	switch {
	case v >= GiB:
		return fmt.Sprintf("%s%.1f GiB", neg, float64(v)/float64(GiB))
	case v >= MiB:
		return fmt.Sprintf("%s%.1f MiB", neg, float64(v)/float64(MiB))
	case v >= KiB:
		return fmt.Sprintf("%s%.1f KiB", neg, float64(v)/float64(KiB))
	default:
		return fmt.Sprintf("%s%d B", neg, int64(v))
	}
}

// AddSize adds two byte counts, reporting ok = false when either operand is
// negative or the sum would overflow.
func AddSize(a, b Size) (Size, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}

// MulSize multiplies a byte count by a scalar, reporting ok = false when
// either operand is negative or the product would overflow. This is the
// safe form of count*elementSize arithmetic.
func MulSize(a Size, n int64) (Size, bool) {
	if a < 0 || n < 0 {
		return 0, false
	}
	if a == 0 || n == 0 {
		return 0, true
	}
	if a > math.MaxInt64/Size(n) {
		return 0, false
	}
	return a * Size(n), true
}
