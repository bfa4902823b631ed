package mem

// Alignment is a power-of-two byte boundary constraint.
//
// Every function in this package that takes an Alignment requires a power of
// two; passing anything else is a programming error, not a runtime condition.
// Allocator entry points enforce this with IsValid and panic on violation.
type Alignment int64

// NoAlign places no constraint beyond byte addressing.
const NoAlign Alignment = 1

// IsValid reports whether a is a power of two.
func (a Alignment) IsValid() bool {
	return a > 0 && a&(a-1) == 0
}

// RoundUp returns n rounded up to the next multiple of a.
//
// Example:
//
//	RoundUp(1, 8)     = 8
//	RoundUp(8, 8)     = 8
//	RoundUp(9, 8)     = 16
//	RoundUp(1, 4096)  = 4096
//
// a must be a power of two; the result is undefined otherwise.
func RoundUp(n Size, a Alignment) Size {
	mask := Size(a) - 1
	return (n + mask) &^ mask
}

// RoundDown returns n rounded down to the previous multiple of a.
//
// Example:
//
//	RoundDown(9, 8)    = 8
//	RoundDown(4095, 4096) = 0
//
// a must be a power of two; the result is undefined otherwise.
func RoundDown(n Size, a Alignment) Size {
	return n &^ (Size(a) - 1)
}

// IsAligned reports whether n is a multiple of a.
func IsAligned(n Size, a Alignment) bool {
	return n&(Size(a)-1) == 0
}

// RoundUpAddr rounds an address up to the next multiple of a.
func RoundUpAddr(p uintptr, a Alignment) uintptr {
	mask := uintptr(a) - 1
	return (p + mask) &^ mask
}

// RoundDownAddr rounds an address down to the previous multiple of a.
func RoundDownAddr(p uintptr, a Alignment) uintptr {
	return p &^ (uintptr(a) - 1)
}

// IsAlignedAddr reports whether the address p is aligned to a.
func IsAlignedAddr(p uintptr, a Alignment) bool {
	return p&(uintptr(a)-1) == 0
}
