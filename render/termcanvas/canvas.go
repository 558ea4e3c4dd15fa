// Package termcanvas composites chord diagram frames into terminal cells through tcell
package termcanvas

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chordflow/render"
	"github.com/lixenwraith/chordflow/vmath"
)

// Glyph radius thresholds in cells; larger circles fill background cells
const (
	dotRadius    = 0.3
	bulletRadius = 0.55
	glyphRadius  = 0.8
)

// Canvas draws into a cell buffer and flushes to a tcell screen on End
// It serves both as the vector canvas and as the accelerated device, rasterizing triangles per cell
type Canvas struct {
	screen tcell.Screen
	buf    *Buffer
	aspect float64
}

// New creates a canvas over screen with bg as the untouched cell color
func New(screen tcell.Screen, bg color.RGBA) *Canvas {
	return &Canvas{
		screen: screen,
		buf:    NewBuffer(0, 0, FromRGBA(bg)),
		aspect: 1,
	}
}

// Buffer exposes the compositor for overlays drawn after the diagram
func (c *Canvas) Buffer() *Buffer {
	return c.buf
}

// Begin sizes the buffer to the viewport and clears it
func (c *Canvas) Begin(vp render.Viewport) error {
	c.aspect = vp.Aspect
	if c.aspect <= 0 {
		c.aspect = 1
	}
	if w, h := c.buf.Size(); w != vp.Width || h != vp.Height {
		c.buf.Resize(vp.Width, vp.Height)
		return nil
	}
	c.buf.Clear()
	return nil
}

// Circle draws a glyph for sub-cell radii and an aspect-corrected ellipse of background otherwise
func (c *Canvas) Circle(x, y, r float64, col color.RGBA) {
	alpha := float64(col.A) / 255
	rgb := FromRGBA(col)
	if r < glyphRadius {
		c.buf.Set(int(math.Floor(x)), int(math.Floor(y)), glyphFor(r), rgb, rgb, BlendScreenFg, alpha)
		return
	}
	ry := r / c.aspect
	x0, x1 := int(math.Floor(x-r)), int(math.Ceil(x+r))
	y0, y1 := int(math.Floor(y-ry)), int(math.Ceil(y+ry))
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			dx := (float64(cx) + 0.5 - x) / r
			dy := (float64(cy) + 0.5 - y) / ry
			if dx*dx+dy*dy <= 1 {
				c.buf.Set(cx, cy, 0, rgb, rgb, BlendAlphaBg, alpha)
			}
		}
	}
}

// Polyline plots each segment at half-cell steps
func (c *Canvas) Polyline(pts []vmath.Vec2, width float64, col color.RGBA) {
	alpha := float64(col.A) / 255
	rgb := FromRGBA(col)
	plot := func(p vmath.Vec2) {
		x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
		if width >= 1 {
			c.buf.Set(x, y, 0, rgb, rgb, BlendAlphaBg, alpha)
			return
		}
		c.buf.Set(x, y, '·', rgb, rgb, BlendMaxFg, alpha)
	}
	if len(pts) == 1 {
		plot(pts[0])
		return
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		steps := int(math.Ceil(max(math.Abs(d.X), math.Abs(d.Y)) * 2))
		for s := 0; s <= steps; s++ {
			t := 0.0
			if steps > 0 {
				t = float64(s) / float64(steps)
			}
			plot(a.Lerp(b, t))
		}
	}
}

// End flushes the frame to the screen
func (c *Canvas) End() error {
	c.buf.Flush(c.screen)
	return nil
}

// Available reports the cell rasterizer as always present
func (c *Canvas) Available() bool {
	return true
}

// DrawTriangles fills cells whose centers fall inside each triangle
// Triangles that cover no cell center mark their centroid cell with a glyph
func (c *Canvas) DrawTriangles(vertices []render.Vertex, indices []uint16) error {
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, d := vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]
		c.fillTriangle(a, b, d)
	}
	return nil
}

func (c *Canvas) fillTriangle(a, b, d render.Vertex) {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	dx, dy := float64(d.X), float64(d.Y)

	area := (bx-ax)*(dy-ay) - (by-ay)*(dx-ax)
	rgb := FromRGBA(a.Color)
	alpha := float64(a.Color.A) / 255

	x0, x1 := int(math.Floor(min(ax, bx, dx))), int(math.Ceil(max(ax, bx, dx)))
	y0, y1 := int(math.Floor(min(ay, by, dy))), int(math.Ceil(max(ay, by, dy)))

	covered := false
	if area != 0 {
		for cy := y0; cy <= y1; cy++ {
			for cx := x0; cx <= x1; cx++ {
				px, py := float64(cx)+0.5, float64(cy)+0.5
				w0 := ((bx-px)*(dy-py) - (by-py)*(dx-px)) / area
				w1 := ((dx-px)*(ay-py) - (dy-py)*(ax-px)) / area
				w2 := 1 - w0 - w1
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
				c.buf.Set(cx, cy, 0, rgb, rgb, BlendAlphaBg, alpha)
				covered = true
			}
		}
	}
	if !covered {
		mx, my := (ax+bx+dx)/3, (ay+by+dy)/3
		c.buf.Set(int(math.Floor(mx)), int(math.Floor(my)), '•', rgb, rgb, BlendMaxFg, alpha)
	}
}

func glyphFor(r float64) rune {
	switch {
	case r < dotRadius:
		return '·'
	case r < bulletRadius:
		return '•'
	default:
		return '●'
	}
}

// Text writes s starting at the cell under x, centered horizontally
func (c *Canvas) Text(x, y float64, s string, col color.RGBA) {
	rgb := FromRGBA(col)
	runes := []rune(s)
	cx := int(math.Floor(x)) - len(runes)/2
	cy := int(math.Floor(y))
	for i, r := range runes {
		c.buf.Set(cx+i, cy, r, rgb, rgb, BlendAlphaFg, 1)
	}
}
