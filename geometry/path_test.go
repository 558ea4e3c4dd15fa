package geometry

import (
	"math"
	"testing"

	"github.com/lixenwraith/chordflow/vmath"
)

func TestBuildPathEndpoints(t *testing.T) {
	src := Arc{StartAngle: 0, EndAngle: 0.4, Radius: 1}
	dst := Arc{StartAngle: math.Pi, EndAngle: math.Pi + 0.4, Radius: 1}

	for _, curvature := range []float64{0, 0.5, 1} {
		p := BuildPath(src, dst, curvature)
		if got := p.At(0); !vmath.ApproxEqual(got, src.Midpoint(), 1e-12) {
			t.Errorf("curvature %.1f: t=0 expected %v, got %v", curvature, src.Midpoint(), got)
		}
		if got := p.At(1); !vmath.ApproxEqual(got, dst.Midpoint(), 1e-12) {
			t.Errorf("curvature %.1f: t=1 expected %v, got %v", curvature, dst.Midpoint(), got)
		}
	}
}

func TestBuildPathStraightAtZeroCurvature(t *testing.T) {
	src := Arc{StartAngle: 0.2, EndAngle: 0.6, Radius: 1}
	dst := Arc{StartAngle: 2.0, EndAngle: 2.5, Radius: 1}
	p := BuildPath(src, dst, 0)
	line := Line{From: src.Midpoint(), To: dst.Midpoint()}
	for i := 0; i <= 10; i++ {
		tt := float64(i) / 10
		if !vmath.ApproxEqual(p.At(tt), line.At(tt), 1e-9) {
			t.Errorf("t=%.1f: quad %v deviates from line %v", tt, p.At(tt), line.At(tt))
		}
	}
}

func TestBuildPathFullCurvaturePassesNearCenter(t *testing.T) {
	// Opposite arcs: the chord midpoint should sit at the center when pulled fully
	src := Arc{StartAngle: -0.1, EndAngle: 0.1, Radius: 1}
	dst := Arc{StartAngle: math.Pi - 0.1, EndAngle: math.Pi + 0.1, Radius: 1}
	mid := BuildPath(src, dst, 1).At(0.5)
	if mid.Len() > 1e-9 {
		t.Errorf("Expected midpoint at origin, got %v", mid)
	}
}

func TestSelfChordLoop(t *testing.T) {
	a := Arc{StartAngle: 1, EndAngle: 1.8, Radius: 1}
	p := BuildPath(a, a, 1)

	if _, ok := p.(Cubic); !ok {
		t.Fatalf("Expected cubic loop for self-chord, got %T", p)
	}
	start, end := p.At(0), p.At(1)
	if math.Abs(start.Len()-1) > 1e-9 || math.Abs(end.Len()-1) > 1e-9 {
		t.Errorf("Loop endpoints should lie on the circle: %v %v", start, end)
	}
	if vmath.ApproxEqual(start, end, 1e-6) {
		t.Error("Loop endpoints should differ")
	}
	if mid := p.At(0.5); mid.Len() >= 1 {
		t.Errorf("Loop should dip inward, midpoint radius %f", mid.Len())
	}
	// Continuity: small steps in t give small steps in space
	prev := p.At(0)
	for i := 1; i <= 100; i++ {
		cur := p.At(float64(i) / 100)
		if cur.Sub(prev).Len() > 0.1 {
			t.Fatalf("Discontinuity at step %d: %v -> %v", i, prev, cur)
		}
		prev = cur
	}
}

func TestNormalIsUnitAndPerpendicular(t *testing.T) {
	src := Arc{StartAngle: 0, EndAngle: 0.5, Radius: 1}
	dst := Arc{StartAngle: 2, EndAngle: 2.5, Radius: 1}
	p := BuildPath(src, dst, 0.7)
	for i := 0; i <= 10; i++ {
		tt := float64(i) / 10
		n := Normal(p, tt)
		if math.Abs(n.Len()-1) > 1e-9 {
			t.Errorf("t=%.1f: normal not unit: %v", tt, n)
		}
		if d := n.Dot(p.Derivative(tt).Normalize()); math.Abs(d) > 1e-9 {
			t.Errorf("t=%.1f: normal not perpendicular, dot=%g", tt, d)
		}
	}
}

func TestNormalZeroTangentFallback(t *testing.T) {
	pt := vmath.V(0, -1)
	p := Line{From: pt, To: pt}
	n := Normal(p, 0.5)
	if !vmath.ApproxEqual(n, vmath.V(0, -1), 1e-12) {
		t.Errorf("Expected radial fallback (0,-1), got %v", n)
	}

	origin := Line{}
	if n := Normal(origin, 0.5); !vmath.ApproxEqual(n, vmath.V(1, 0), 1e-12) {
		t.Errorf("Expected +X fallback at origin, got %v", n)
	}
}

func TestPathFuncDerivative(t *testing.T) {
	f := PathFunc(func(t float64) vmath.Vec2 { return vmath.V(3*t, 1) })
	d := f.Derivative(0.5)
	if !vmath.ApproxEqual(d, vmath.V(3, 0), 1e-6) {
		t.Errorf("Expected (3,0), got %v", d)
	}
	// Clamped at the ends
	if d := f.Derivative(0); !vmath.ApproxEqual(d, vmath.V(3, 0), 1e-6) {
		t.Errorf("Expected (3,0) at t=0, got %v", d)
	}
}

func TestArcDegenerate(t *testing.T) {
	tests := []struct {
		name string
		arc  Arc
		want bool
	}{
		{"normal", Arc{0, 0.5, 1}, false},
		{"zero span", Arc{1, 1, 1}, true},
		{"negative span", Arc{1, 0.5, 1}, true},
		{"zero radius", Arc{0, 1, 0}, true},
		{"nan angle", Arc{math.NaN(), 1, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arc.Degenerate(); got != tt.want {
				t.Errorf("Degenerate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArcSub(t *testing.T) {
	a := Arc{StartAngle: 1, EndAngle: 2, Radius: 1}
	s := a.Sub(0.25, 0.75)
	if math.Abs(s.StartAngle-1.25) > 1e-12 || math.Abs(s.EndAngle-1.75) > 1e-12 {
		t.Errorf("Unexpected sub-arc %+v", s)
	}
}

func TestSampleCount(t *testing.T) {
	pts := Sample(Line{From: vmath.V(0, 0), To: vmath.V(1, 0)}, 4)
	if len(pts) != 5 {
		t.Fatalf("Expected 5 points, got %d", len(pts))
	}
	if !vmath.ApproxEqual(pts[2], vmath.V(0.5, 0), 1e-12) {
		t.Errorf("Expected midpoint (0.5,0), got %v", pts[2])
	}
}
