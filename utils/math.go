package utils

import "math"

// AbsInt returns the absolute value of the given int.
func AbsInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// MaxInt returns the maximum of two ints.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MinInt returns the minimum of two ints.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ClampF64 restricts v to [min, max].
func ClampF64(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

// ClampInt restricts v to [min, max].
func ClampInt(v, min, max int) int {
	return MaxInt(min, MinInt(max, v))
}

// IsOdd reports whether n is odd.
func IsOdd(n int) bool {
	return n%2 != 0
}

// MaxUint8 returns the maximum of two uint8s.
func MaxUint8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

// MinUint8 returns the minimum of two uint8s.
func MinUint8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
