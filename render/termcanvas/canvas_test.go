package termcanvas

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chordflow/render"
	"github.com/lixenwraith/chordflow/vmath"
)

var testBg = color.RGBA{R: 10, G: 10, B: 10, A: 255}

func newTestCanvas(t *testing.T, w, h int) (*Canvas, tcell.Screen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return New(screen, testBg), screen
}

func TestBufferBlendModes(t *testing.T) {
	b := NewBuffer(4, 1, RGB{})
	red := RGB{R: 200}

	b.Set(0, 0, 'x', red, red, BlendReplace, 1)
	if got := b.Get(0, 0); got.Rune != 'x' || got.Fg != red || got.Bg != red {
		t.Errorf("Replace: got %+v", got)
	}

	b.Set(1, 0, 0, red, red, BlendAlphaBg, 0.5)
	if got := b.Get(1, 0).Bg; got.R != 100 {
		t.Errorf("Alpha bg: expected R=100, got %d", got.R)
	}
	if got := b.Get(1, 0).Fg; got != (RGB{}) {
		t.Errorf("Alpha bg must keep fg, got %+v", got)
	}

	b.Set(2, 0, 0, red, red, BlendAdd, 1)
	b.Set(2, 0, 0, red, red, BlendAdd, 1)
	if got := b.Get(2, 0).Bg; got.R != 255 {
		t.Errorf("Add must clamp, got %d", got.R)
	}

	b.Set(-1, 0, 'x', red, red, BlendReplace, 1)
	b.Set(4, 0, 'x', red, red, BlendReplace, 1)
}

func TestBufferResizeClears(t *testing.T) {
	b := NewBuffer(2, 2, RGB{B: 9})
	b.Set(1, 1, 'q', RGB{R: 1}, RGB{R: 1}, BlendReplace, 1)
	b.Resize(3, 2)
	if w, h := b.Size(); w != 3 || h != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", w, h)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if c := b.Get(x, y); c.Rune != ' ' || c.Bg != (RGB{B: 9}) {
				t.Errorf("Cell (%d,%d) not cleared: %+v", x, y, c)
			}
		}
	}
}

func TestCanvasSmallCircleGlyph(t *testing.T) {
	c, screen := newTestCanvas(t, 10, 5)
	vp := render.Viewport{Width: 10, Height: 5, Aspect: 2}

	if err := c.Begin(vp); err != nil {
		t.Fatal(err)
	}
	c.Circle(3.4, 2.2, 0.2, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	c.Circle(6.5, 2.5, 0.7, color.RGBA{R: 255, A: 255})
	if err := c.End(); err != nil {
		t.Fatal(err)
	}

	if r, _, _, _ := screen.GetContent(3, 2); r != '·' {
		t.Errorf("Expected dot at (3,2), got %q", r)
	}
	if r, _, _, _ := screen.GetContent(6, 2); r != '●' {
		t.Errorf("Expected filled circle at (6,2), got %q", r)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != ' ' {
		t.Errorf("Expected blank cell at origin, got %q", r)
	}
}

func TestCanvasLargeCircleRespectsAspect(t *testing.T) {
	c, _ := newTestCanvas(t, 20, 10)
	if err := c.Begin(render.Viewport{Width: 20, Height: 10, Aspect: 2}); err != nil {
		t.Fatal(err)
	}
	c.Circle(10, 5, 4, color.RGBA{G: 255, A: 255})

	green := RGB{G: 255}
	if got := c.Buffer().Get(10, 5).Bg; got != green {
		t.Errorf("Center should be filled, got %+v", got)
	}
	if got := c.Buffer().Get(13, 5).Bg; got != green {
		t.Errorf("Horizontal extent should be filled, got %+v", got)
	}
	// vertical radius is 4/aspect = 2 rows
	if got := c.Buffer().Get(10, 8).Bg; got == green {
		t.Error("Vertical extent must be compressed by aspect")
	}
}

func TestCanvasPolylineCoversSegment(t *testing.T) {
	c, _ := newTestCanvas(t, 12, 3)
	if err := c.Begin(render.Viewport{Width: 12, Height: 3, Aspect: 1}); err != nil {
		t.Fatal(err)
	}
	c.Polyline([]vmath.Vec2{vmath.V(1, 1), vmath.V(10, 1)}, 0.5, color.RGBA{B: 255, A: 255})
	for x := 1; x <= 10; x++ {
		if r := c.Buffer().Get(x, 1).Rune; r != '·' {
			t.Errorf("Expected dot at x=%d, got %q", x, r)
		}
	}
	if r := c.Buffer().Get(0, 1).Rune; r != ' ' {
		t.Errorf("Expected nothing before segment, got %q", r)
	}
}

func TestCanvasRasterizesTriangles(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 10)
	if err := c.Begin(render.Viewport{Width: 10, Height: 10, Aspect: 1}); err != nil {
		t.Fatal(err)
	}
	col := color.RGBA{R: 255, A: 255}
	verts := []render.Vertex{
		{X: 0, Y: 0, Color: col},
		{X: 8, Y: 0, Color: col},
		{X: 0, Y: 8, Color: col},
		{X: 9.1, Y: 9.1, Color: col},
		{X: 9.2, Y: 9.1, Color: col},
		{X: 9.1, Y: 9.2, Color: col},
	}
	if err := c.DrawTriangles(verts, []uint16{0, 1, 2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}

	if got := c.Buffer().Get(1, 1).Bg; got != (RGB{R: 255}) {
		t.Errorf("Interior cell should be filled, got %+v", got)
	}
	if got := c.Buffer().Get(7, 7).Bg; got == (RGB{R: 255}) {
		t.Error("Cell outside the hypotenuse must stay empty")
	}
	if r := c.Buffer().Get(9, 9).Rune; r != '•' {
		t.Errorf("Sub-cell triangle should leave a glyph, got %q", r)
	}
	if !c.Available() {
		t.Error("Cell rasterizer should always be available")
	}
}

func TestCanvasDrivesAcceleratedStrategy(t *testing.T) {
	c, _ := newTestCanvas(t, 40, 20)
	acc := render.NewAccelerated(c)
	if !acc.Available() {
		t.Fatal("Expected accelerated strategy to accept the terminal device")
	}
}

func TestCanvasTextCentered(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 2)
	if err := c.Begin(render.Viewport{Width: 10, Height: 2, Aspect: 2}); err != nil {
		t.Fatal(err)
	}
	var _ render.TextCanvas = c
	c.Text(5.2, 1.5, "abcd", color.RGBA{R: 255, G: 255, B: 255, A: 255})
	got := ""
	for x := 3; x < 7; x++ {
		got += string(c.Buffer().Get(x, 1).Rune)
	}
	if got != "abcd" {
		t.Errorf("Expected abcd at columns 3-6, got %q", got)
	}
}
