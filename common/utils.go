package common

import "github.com/go-gl/mathgl/mgl32"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Vec3FromSlice converts a YAML-friendly float slice into a vector.
// Missing components fall back to the matching component of def.
//
// Parameters:
//   - s: up to three components
//   - def: fallback vector
//
// Returns:
//   - mgl32.Vec3: the resulting vector
func Vec3FromSlice(s []float32, def mgl32.Vec3) mgl32.Vec3 {
	out := def
	for i := 0; i < len(s) && i < 3; i++ {
		out[i] = s[i]
	}
	return out
}
