package svgcanvas

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/lixenwraith/chordflow/render"
	"github.com/lixenwraith/chordflow/vmath"
)

func TestCanvasWritesDocument(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, color.RGBA{R: 26, G: 27, B: 38, A: 255})

	if err := c.Begin(render.Viewport{Width: 200, Height: 100}); err != nil {
		t.Fatal(err)
	}
	c.Circle(10.25, 20.5, 1.5, color.RGBA{R: 255, A: 128})
	c.Circle(50, 50, 0.01, color.RGBA{G: 255, A: 255})
	c.Polyline([]vmath.Vec2{vmath.V(0, 0), vmath.V(10, 10), vmath.V(20, 0)}, 0.5, color.RGBA{B: 255, A: 255})
	if err := c.End(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if got := strings.Count(out, "<circle"); got != 2 {
		t.Errorf("Expected 2 circles, got %d", got)
	}
	if c.Circles() != 2 {
		t.Errorf("Expected circle counter 2, got %d", c.Circles())
	}
	for _, want := range []string{
		`viewBox="0 0 2000 1000"`,
		`cx="103"`,
		`cy="205"`,
		"fill:#ff0000;fill-opacity:0.502",
		"fill:#1a1b26",
		"<polyline",
		"stroke:#0000ff",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q", want)
		}
	}
}

func TestCanvasRejectsEmptyViewport(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, color.RGBA{A: 255})
	if err := c.Begin(render.Viewport{}); err == nil {
		t.Error("Expected error for empty viewport")
	}
	if buf.Len() != 0 {
		t.Errorf("Nothing should be written, got %q", buf.String())
	}
}

func TestCanvasUnderVectorStrategy(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, color.RGBA{A: 255})
	vp := render.Viewport{Width: 64, Height: 64}
	if err := c.Begin(vp); err != nil {
		t.Fatal(err)
	}
	v := render.NewVector(c)
	if v.Backend() != "vector" {
		t.Errorf("Unexpected backend %q", v.Backend())
	}
	if err := c.End(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(buf.String()), "</svg>") {
		t.Error("Document not closed")
	}
}
