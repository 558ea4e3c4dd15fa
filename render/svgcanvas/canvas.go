// Package svgcanvas writes chord diagram frames as standalone SVG documents
package svgcanvas

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/lixenwraith/chordflow/parameter/visual"
	"github.com/lixenwraith/chordflow/render"
	"github.com/lixenwraith/chordflow/vmath"
)

// Subpixel is the number of viewBox units per device pixel
// svgo takes integer coordinates, so geometry is scaled up and the viewBox scales it back
const Subpixel = 10

// Canvas renders one SVG document per Begin/End pair
type Canvas struct {
	w          io.Writer
	svg        *svg.SVG
	background color.RGBA
	circles    int
}

// New creates a canvas writing to w
func New(w io.Writer, background color.RGBA) *Canvas {
	return &Canvas{w: w, svg: svg.New(w), background: background}
}

// Circles returns the number of circles drawn in the current or last frame
func (c *Canvas) Circles() int {
	return c.circles
}

// Begin opens the document and paints the background
func (c *Canvas) Begin(vp render.Viewport) error {
	if vp.Empty() {
		return fmt.Errorf("svg canvas: empty viewport %dx%d", vp.Width, vp.Height)
	}
	c.circles = 0
	c.svg.Startview(vp.Width, vp.Height, 0, 0, vp.Width*Subpixel, vp.Height*Subpixel)
	c.svg.Rect(0, 0, vp.Width*Subpixel, vp.Height*Subpixel, "fill:"+visual.Hex(c.background))
	return nil
}

// Circle writes a filled circle
func (c *Canvas) Circle(x, y, r float64, col color.RGBA) {
	c.circles++
	c.svg.Circle(scaled(x), scaled(y), max(scaled(r), 1), fillStyle(col))
}

// Polyline writes an unfilled stroke
func (c *Canvas) Polyline(pts []vmath.Vec2, width float64, col color.RGBA) {
	if len(pts) == 0 {
		return
	}
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = scaled(p.X), scaled(p.Y)
	}
	c.svg.Polyline(xs, ys, strokeStyle(col, width))
}

// End closes the document
func (c *Canvas) End() error {
	c.svg.End()
	return nil
}

func scaled(v float64) int {
	return int(math.Round(v * Subpixel))
}

func opacity(col color.RGBA) string {
	return fmt.Sprintf("%.3f", float64(col.A)/255)
}

func fillStyle(col color.RGBA) string {
	return "fill:" + visual.Hex(col) + ";fill-opacity:" + opacity(col)
}

func strokeStyle(col color.RGBA, width float64) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%d;stroke-linecap:round",
		visual.Hex(col), opacity(col), max(scaled(width), 1))
}

// Text writes a centered label
func (c *Canvas) Text(x, y float64, s string, col color.RGBA) {
	style := fmt.Sprintf("fill:%s;font-size:%dpx;font-family:monospace;text-anchor:middle", visual.Hex(col), 11*Subpixel)
	c.svg.Text(scaled(x), scaled(y), s, style)
}
