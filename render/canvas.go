package render

import (
	"image/color"
	"math"

	"github.com/lixenwraith/chordflow/vmath"
)

// Canvas is a host drawing surface in device coordinates
// Begin and End bracket one frame; Circle is the vector backend's per-particle primitive
type Canvas interface {
	Begin(vp Viewport) error
	Circle(x, y, r float64, c color.RGBA)
	Polyline(pts []vmath.Vec2, width float64, c color.RGBA)
	End() error
}

// Vertex is one corner of a batched triangle, in device coordinates with straight alpha color
type Vertex struct {
	X, Y  float32
	Color color.RGBA
}

// Device accepts batched triangle geometry
// Indices are uint16, so one call holds at most MaxBatchVertices vertices
type Device interface {
	Available() bool
	DrawTriangles(vertices []Vertex, indices []uint16) error
}

// Fill applies opacity to a straight-alpha color
func Fill(c color.RGBA, opacity float64) color.RGBA {
	a := vmath.Clamp01(opacity) * float64(c.A)
	c.A = uint8(math.Round(a))
	return c
}
