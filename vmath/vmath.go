package vmath

import "math"

// Epsilon is the tolerance below which lengths and spans are treated as zero
const Epsilon = 1e-9

// TwoPi is a full rotation in radians
const TwoPi = 2 * math.Pi

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1]
func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

// ClampInt bounds v to [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap01 wraps v into [0, 1)
func Wrap01(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	return v
}

// NormalizeAngle wraps angle to [0, 2π)
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, TwoPi)
	if angle < 0 {
		angle += TwoPi
	}
	return angle
}

// Finite reports whether v is neither NaN nor infinite
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
