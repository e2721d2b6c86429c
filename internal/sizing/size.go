// Package sizing provides checked conversions and arithmetic for the
// fixed-width fields of the ZIP format.
package sizing

import "math"

// ToUint16 converts n to uint16, returning overflowErr if it doesn't fit.
func ToUint16(n int, overflowErr error) (uint16, error) {
	if n < 0 || n > math.MaxUint16 {
		return 0, overflowErr
	}
	return uint16(n), nil
}

// ToUint32 converts n to uint32, returning overflowErr if it doesn't fit.
func ToUint32(n int, overflowErr error) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, overflowErr
	}
	return uint32(n), nil
}

// AddUint32 adds two uint32 values, returning (result, false) on overflow.
func AddUint32(a, b uint32) (uint32, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// SumUint32 adds all values, returning (result, false) on overflow.
func SumUint32(values ...uint32) (uint32, bool) {
	var total uint32
	for _, v := range values {
		var ok bool
		if total, ok = AddUint32(total, v); !ok {
			return 0, false
		}
	}
	return total, true
}
