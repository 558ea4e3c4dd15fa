package vmath

import "math"

// Vec2 is a point or direction in layout space
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2 construction
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(k float64) Vec2 { return Vec2{a.X * k, a.Y * k} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }

// Len returns the Euclidean magnitude
func (a Vec2) Len() float64 { return math.Hypot(a.X, a.Y) }

// Lerp interpolates a → b by t without clamping
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Normalize returns the unit vector, zero-safe
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Perpendicular returns the vector rotated 90° counter-clockwise
func (a Vec2) Perpendicular() Vec2 { return Vec2{-a.Y, a.X} }

// IsZero reports whether both components are within Epsilon of zero
func (a Vec2) IsZero() bool {
	return math.Abs(a.X) < Epsilon && math.Abs(a.Y) < Epsilon
}

// Polar returns the point at angle (radians, clockwise from 12 o'clock) and radius
// Matches chord-diagram convention where angle 0 is straight up
func Polar(angle, radius float64) Vec2 {
	return Vec2{X: radius * math.Sin(angle), Y: -radius * math.Cos(angle)}
}

// ApproxEqual compares vectors within tol per component
func ApproxEqual(a, b Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}
