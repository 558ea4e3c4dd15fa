package render

import (
	"image/color"
	"sync"

	"github.com/lixenwraith/chordflow/vmath"
)

// CircleCall is one recorded Canvas.Circle
type CircleCall struct {
	X, Y, R float64
	Color   color.RGBA
}

// PolylineCall is one recorded Canvas.Polyline
type PolylineCall struct {
	Points []vmath.Vec2
	Width  float64
	Color  color.RGBA
}

// TextCall is one recorded TextCanvas.Text
type TextCall struct {
	X, Y  float64
	Text  string
	Color color.RGBA
}

// BatchCall is one recorded Device.DrawTriangles
type BatchCall struct {
	Vertices []Vertex
	Indices  []uint16
}

// Recorder is an in-memory Canvas and Device used headless and in tests
type Recorder struct {
	mu        sync.Mutex
	Frames    int
	Viewport  Viewport
	Circles   []CircleCall
	Polylines []PolylineCall
	Batches   []BatchCall
	Texts     []TextCall

	// Unavailable makes the device report itself missing
	Unavailable bool
	// FailDraw makes DrawTriangles return this error
	FailDraw error
	// OnCircle is invoked inside Circle, used to probe re-entrancy
	OnCircle func()
}

// NewRecorder creates an available recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Begin clears recorded calls and starts a frame
func (r *Recorder) Begin(vp Viewport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Frames++
	r.Viewport = vp
	r.Circles = r.Circles[:0]
	r.Polylines = r.Polylines[:0]
	r.Batches = r.Batches[:0]
	r.Texts = r.Texts[:0]
	return nil
}

// Circle records a circle
func (r *Recorder) Circle(x, y, rad float64, c color.RGBA) {
	r.mu.Lock()
	r.Circles = append(r.Circles, CircleCall{X: x, Y: y, R: rad, Color: c})
	hook := r.OnCircle
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// Polyline records a copy of the points
func (r *Recorder) Polyline(pts []vmath.Vec2, width float64, c color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Polylines = append(r.Polylines, PolylineCall{Points: append([]vmath.Vec2(nil), pts...), Width: width, Color: c})
}

// Text records a label
func (r *Recorder) Text(x, y float64, s string, c color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Texts = append(r.Texts, TextCall{X: x, Y: y, Text: s, Color: c})
}

// End finishes the frame
func (r *Recorder) End() error { return nil }

// Available reports device availability
func (r *Recorder) Available() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.Unavailable
}

// DrawTriangles records a copy of the batch
func (r *Recorder) DrawTriangles(vertices []Vertex, indices []uint16) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailDraw != nil {
		return r.FailDraw
	}
	r.Batches = append(r.Batches, BatchCall{
		Vertices: append([]Vertex(nil), vertices...),
		Indices:  append([]uint16(nil), indices...),
	})
	return nil
}

// Centers returns vertex 0 of every fan across all recorded batches, given fan size
func (r *Recorder) Centers(fanSize int) []vmath.Vec2 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []vmath.Vec2
	for _, b := range r.Batches {
		for i := 0; i+fanSize <= len(b.Vertices); i += fanSize {
			v := b.Vertices[i]
			out = append(out, vmath.V(float64(v.X), float64(v.Y)))
		}
	}
	return out
}
