package geometry

import (
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/vmath"
)

// Path is a continuous, differentiable curve over t ∈ [0,1]
type Path interface {
	At(t float64) vmath.Vec2
	Derivative(t float64) vmath.Vec2
}

// Line is a straight path
type Line struct {
	From, To vmath.Vec2
}

func (l Line) At(t float64) vmath.Vec2       { return l.From.Lerp(l.To, t) }
func (l Line) Derivative(float64) vmath.Vec2 { return l.To.Sub(l.From) }

// Quad is a quadratic Bézier path
type Quad struct {
	P0, C, P1 vmath.Vec2
}

func (q Quad) At(t float64) vmath.Vec2         { return vmath.QuadPoint(q.P0, q.C, q.P1, t) }
func (q Quad) Derivative(t float64) vmath.Vec2 { return vmath.QuadDerivative(q.P0, q.C, q.P1, t) }

// Cubic is a cubic Bézier path, used for self-chord loops
type Cubic struct {
	P0, C0, C1, P1 vmath.Vec2
}

func (c Cubic) At(t float64) vmath.Vec2 { return vmath.CubicPoint(c.P0, c.C0, c.C1, c.P1, t) }
func (c Cubic) Derivative(t float64) vmath.Vec2 {
	return vmath.CubicDerivative(c.P0, c.C0, c.C1, c.P1, t)
}

// PathFunc adapts a bare point function; the derivative is a central difference
type PathFunc func(t float64) vmath.Vec2

const derivativeStep = 1e-5

func (f PathFunc) At(t float64) vmath.Vec2 { return f(t) }

func (f PathFunc) Derivative(t float64) vmath.Vec2 {
	lo := vmath.Clamp01(t - derivativeStep)
	hi := vmath.Clamp01(t + derivativeStep)
	return f(hi).Sub(f(lo)).Scale(1 / (hi - lo))
}

// BuildPath returns the path from source arc midpoint (t=0) to target arc midpoint (t=1)
// curvature 0 draws a straight chord, 1 pulls the control point to the circle center
// Equal arcs produce a short inward loop instead of a zero-length path
func BuildPath(source, target Arc, curvature float64) Path {
	curvature = vmath.Clamp01(curvature)
	if source.Equal(target) {
		return selfLoop(source)
	}
	p0 := source.Midpoint()
	p1 := target.Midpoint()
	mid := p0.Lerp(p1, 0.5)
	c := mid.Lerp(vmath.Vec2{}, curvature)
	return Quad{P0: p0, C: c, P1: p1}
}

// selfLoop leaves the arc at its first quarter and re-enters at its third quarter
func selfLoop(a Arc) Path {
	inner := a.Radius * (1 - parameter.LoopDepth)
	qa := a.StartAngle + a.Span()*0.25
	qb := a.StartAngle + a.Span()*0.75
	return Cubic{
		P0: vmath.Polar(qa, a.Radius),
		C0: vmath.Polar(qa, inner),
		C1: vmath.Polar(qb, inner),
		P1: vmath.Polar(qb, a.Radius),
	}
}

// Normal returns the unit left normal at t
// A vanishing tangent falls back to the radial direction, then to +X at the origin
func Normal(p Path, t float64) vmath.Vec2 {
	d := p.Derivative(t)
	if d.IsZero() {
		radial := p.At(t).Normalize()
		if radial.IsZero() {
			return vmath.V(1, 0)
		}
		return radial
	}
	return d.Normalize().Perpendicular()
}

// Offset returns the point at t displaced along the normal by lateral
func Offset(p Path, t, lateral float64) vmath.Vec2 {
	return p.At(t).Add(Normal(p, t).Scale(lateral))
}

// Sample returns n+1 evenly spaced points along the path for outline drawing
func Sample(p Path, n int) []vmath.Vec2 {
	if n < 1 {
		n = 1
	}
	pts := make([]vmath.Vec2, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = p.At(float64(i) / float64(n))
	}
	return pts
}
