// Package safe provides helpers for safe numeric conversions with range
// checks.
package safe

import (
	"fmt"
	"math"
)

// maxExactFloatInt is the largest magnitude a float64 can hold with integer
// precision.
const maxExactFloatInt = int64(1) << 53

// Int64FromFloat converts a JSON-decoded number to int64, rejecting
// fractional values and values outside exact integer range.
func Int64FromFloat(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %v is not a finite number", v)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("value %v is not an integer", v)
	}
	if v > float64(maxExactFloatInt) || v < -float64(maxExactFloatInt) {
		return 0, fmt.Errorf("value %v out of int64 range", v)
	}
	return int64(v), nil
}

// ClampUpper caps v at limit.
func ClampUpper(v, limit int64) int64 {
	if v > limit {
		return limit
	}
	return v
}

// ClampLower raises v to at least limit.
func ClampLower(v, limit int64) int64 {
	if v < limit {
		return limit
	}
	return v
}
