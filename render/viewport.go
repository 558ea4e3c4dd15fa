// Package render draws the particle layer through interchangeable backends and composes
// the diagram layers onto a host canvas
package render

import (
	"github.com/lixenwraith/chordflow/parameter"
)

// Viewport is the drawing surface size in device units
type Viewport struct {
	Width  int
	Height int

	// Aspect is the height/width ratio of one device unit; 0 means square pixels
	Aspect float64
}

func (v Viewport) aspect() float64 {
	if v.Aspect <= 0 {
		return 1
	}
	return v.Aspect
}

// Empty reports whether nothing can be drawn
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Transform maps layout coordinates to device coordinates
// Computed once per viewport and shared by every backend so positions agree exactly
type Transform struct {
	viewport Viewport
	scale    float64
	cx, cy   float64
	aspect   float64
}

// NewTransform fits the layout circle into vp with ViewportPadding margin, centered
func NewTransform(vp Viewport) Transform {
	a := vp.aspect()
	w := float64(vp.Width)
	h := float64(vp.Height) * a
	half := min(w, h) / 2
	return Transform{
		viewport: vp,
		scale:    half * (1 - parameter.ViewportPadding) / parameter.LayoutRadius,
		cx:       w / 2,
		cy:       float64(vp.Height) / 2,
		aspect:   a,
	}
}

// Viewport returns the viewport the transform was computed for
func (t Transform) Viewport() Viewport {
	return t.viewport
}

// Apply converts a layout point to device coordinates
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.cx + x*t.scale, t.cy + y*t.scale/t.aspect
}

// Radius converts a layout length to horizontal device units
func (t Transform) Radius(r float64) float64 {
	return r * t.scale
}

// Scale returns device units per layout unit along x
func (t Transform) Scale() float64 {
	return t.scale
}

// Aspect returns the device unit height/width ratio
func (t Transform) Aspect() float64 {
	return t.aspect
}

// transformCache recomputes only when the viewport changes
type transformCache struct {
	tr         Transform
	valid      bool
	recomputes int
}

func (c *transformCache) get(vp Viewport) Transform {
	if !c.valid || c.tr.viewport != vp {
		c.tr = NewTransform(vp)
		c.valid = true
		c.recomputes++
	}
	return c.tr
}
