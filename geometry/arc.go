// Package geometry builds the parametric paths that carry particles across a chord
package geometry

import (
	"github.com/lixenwraith/chordflow/vmath"
)

// Arc is an angular span on a circle of the given radius
// Angles are radians, clockwise from 12 o'clock
type Arc struct {
	StartAngle float64
	EndAngle   float64
	Radius     float64
}

// Span returns the angular extent
func (a Arc) Span() float64 { return a.EndAngle - a.StartAngle }

// Mid returns the angle halfway through the span
func (a Arc) Mid() float64 { return (a.StartAngle + a.EndAngle) / 2 }

// Degenerate reports whether the arc cannot anchor a chord
func (a Arc) Degenerate() bool {
	return !(a.Span() > vmath.Epsilon) || !(a.Radius > 0) ||
		!vmath.Finite(a.StartAngle) || !vmath.Finite(a.EndAngle) || !vmath.Finite(a.Radius)
}

// At returns the point at fraction f through the span
func (a Arc) At(f float64) vmath.Vec2 {
	return vmath.Polar(a.StartAngle+a.Span()*f, a.Radius)
}

// Midpoint returns the anchor point used by chord paths
func (a Arc) Midpoint() vmath.Vec2 {
	return vmath.Polar(a.Mid(), a.Radius)
}

// Equal compares arcs within Epsilon, used to detect self-chords
func (a Arc) Equal(b Arc) bool {
	return abs(a.StartAngle-b.StartAngle) < vmath.Epsilon &&
		abs(a.EndAngle-b.EndAngle) < vmath.Epsilon &&
		abs(a.Radius-b.Radius) < vmath.Epsilon
}

// Sub returns the sub-arc covering fractions [from, to] of a
func (a Arc) Sub(from, to float64) Arc {
	span := a.Span()
	return Arc{
		StartAngle: a.StartAngle + span*from,
		EndAngle:   a.StartAngle + span*to,
		Radius:     a.Radius,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
