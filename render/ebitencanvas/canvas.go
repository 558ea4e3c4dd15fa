// Package ebitencanvas draws chord diagram frames into an ebiten window image
// It is both the vector canvas and the accelerated triangle device of the desktop viewer
package ebitencanvas

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/chordflow/render"
	"github.com/lixenwraith/chordflow/vmath"
)

var errNoTarget = errors.New("ebiten canvas: no target image")

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Canvas targets the image handed to Game.Draw
type Canvas struct {
	target     *ebiten.Image
	background color.RGBA
	verts      []ebiten.Vertex
}

// New creates a canvas painting background at the start of each frame
func New(background color.RGBA) *Canvas {
	return &Canvas{background: background}
}

// SetTarget sets the image the next frame draws into
func (c *Canvas) SetTarget(img *ebiten.Image) {
	c.target = img
}

// Begin clears the target to the background color
func (c *Canvas) Begin(vp render.Viewport) error {
	if c.target == nil {
		return errNoTarget
	}
	c.target.Fill(c.background)
	return nil
}

// Circle draws an anti-aliased filled circle
func (c *Canvas) Circle(x, y, r float64, col color.RGBA) {
	vector.DrawFilledCircle(c.target, float32(x), float32(y), float32(r), premultiply(col), true)
}

// Polyline strokes consecutive segments
func (c *Canvas) Polyline(pts []vmath.Vec2, width float64, col color.RGBA) {
	pc := premultiply(col)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(c.target, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(max(width, 1)), pc, true)
	}
}

// End is a no-op; ebiten presents the image after Draw returns
func (c *Canvas) End() error {
	return nil
}

// Available is true for the lifetime of the window; the target is bound per frame in Draw
func (c *Canvas) Available() bool {
	return true
}

// DrawTriangles submits one batch through the GPU triangle path
func (c *Canvas) DrawTriangles(vertices []render.Vertex, indices []uint16) error {
	if c.target == nil {
		return errNoTarget
	}
	c.verts = c.verts[:0]
	for _, v := range vertices {
		c.verts = append(c.verts, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(v.Color.R) / 255,
			ColorG: float32(v.Color.G) / 255,
			ColorB: float32(v.Color.B) / 255,
			ColorA: float32(v.Color.A) / 255,
		})
	}
	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModeStraightAlpha}
	c.target.DrawTriangles(c.verts, indices, whiteSubImage, op)
	return nil
}

// premultiply converts straight alpha to the premultiplied form image/color expects
func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}
