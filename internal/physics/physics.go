// Package physics provides overlap tests and numeric guards used by the rules engine.
package physics

import "math"

// RangesOverlap reports whether the closed intervals [a0, a1] and [b0, b1] intersect.
// Touching edges count as overlap.
func RangesOverlap(a0, a1, b0, b1 float64) bool {
	return a1 >= b0 && a0 <= b1
}

// SameRow checks exact row equality. Rows are tile-aligned, so no tolerance is applied.
func SameRow(y1, y2 float64) bool {
	return y1 == y2
}

// SanitizeDelta returns dt in seconds, or 0 if dt is NaN, infinite or negative.
func SanitizeDelta(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	return dt
}

// ClampInt restricts v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
