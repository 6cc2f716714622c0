// Package buf contains overflow-safe size arithmetic shared by the storage backends.
package buf

import (
	"fmt"
	"math"
)

// UnitSize is the width in bytes of one UTF-16 code unit.
const UnitSize = 2

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative values, returning ok = false when
// the result would overflow int or either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// UnitBytes returns the number of bytes needed to hold n code units.
func UnitBytes(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("negative unit count: %d", n)
	}
	size, ok := MulOverflowSafe(n, UnitSize)
	if !ok {
		return 0, fmt.Errorf("overflow: units=%d * %d", n, UnitSize)
	}
	return size, nil
}

// AlignUp rounds n up to the next multiple of align, which must be a power of two.
func AlignUp(n, align int) (int, bool) {
	sum, ok := AddOverflowSafe(n, align-1)
	if !ok {
		return 0, false
	}
	return sum &^ (align - 1), true
}

// CheckRange validates that [off, off+n) lies within a sequence of length size.
// It is the overflow-safe form of 0 <= off && 0 <= n && off+n <= size.
func CheckRange(size, off, n int) bool {
	if off < 0 || n < 0 || off > size {
		return false
	}
	end, ok := AddOverflowSafe(off, n)
	return ok && end <= size
}
