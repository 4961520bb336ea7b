package vmath

import "math"

// --- Scalar helpers ---

// IsFinite reports whether f is neither NaN nor ±Inf
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFinite maps NaN to 0 and bounds the value (including ±Inf) to [-limit, limit]
// Returns the result and whether the input was modified
func ClampFinite(v, limit float64) (float64, bool) {
	if math.IsNaN(v) {
		return 0, true
	}
	if v > limit {
		return limit, true
	}
	if v < -limit {
		return -limit, true
	}
	return v, false
}

// Sign returns -1 for negative input, +1 otherwise (zero counts as positive)
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// FloorDiv returns floor(v / d) as an int, saturated to [-limit, limit]
// Saturation is monotone so interval overlap between two ranges is preserved
func FloorDiv(v, d float64, limit int) int {
	q := math.Floor(v / d)
	if math.IsNaN(q) {
		return 0
	}
	if q > float64(limit) {
		return limit
	}
	if q < -float64(limit) {
		return -limit
	}
	return int(q)
}
