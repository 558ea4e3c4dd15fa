package render

import (
	"image/color"
	"sync"

	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/geometry"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/parameter/visual"
	"github.com/lixenwraith/chordflow/particle"
	"github.com/lixenwraith/chordflow/vmath"
)

// ArcShape is one node arc with its category color
type ArcShape struct {
	Arc   geometry.Arc
	Color color.RGBA
}

// ChordShape is one chord centerline with its category color
type ChordShape struct {
	Path  geometry.Path
	Color color.RGBA
	// HalfWidth is the ribbon half-width in layout units
	HalfWidth float64
}

// ArcLayer draws node arcs on the outer circle
type ArcLayer struct {
	Arcs []ArcShape
}

// Visible follows ShowArcs
func (l *ArcLayer) Visible(cfg config.Configuration) bool { return cfg.ShowArcs }

// Draw strokes every non-degenerate arc
func (l *ArcLayer) Draw(ctx FrameContext, c Canvas) error {
	width := ctx.Transform.Radius(ctx.Config.ArcWidth)
	for _, a := range l.Arcs {
		if a.Arc.Degenerate() {
			continue
		}
		c.Polyline(project(ctx.Transform, arcPoints(a.Arc)), width, a.Color)
	}
	return nil
}

// ChordLayer draws chord centerlines underneath particles
type ChordLayer struct {
	Chords []ChordShape
}

// Visible follows ShowChords
func (l *ChordLayer) Visible(cfg config.Configuration) bool { return cfg.ShowChords }

// Draw strokes every chord at the configured opacity in the configured shape mode
// ribbon draws both ribbon edges, line the centerline, geometric a straight chord between endpoints
func (l *ChordLayer) Draw(ctx FrameContext, c Canvas) error {
	width := ctx.Config.ChordWidth
	for _, ch := range l.Chords {
		col := Fill(ch.Color, ctx.Config.ChordOpacity)
		switch ctx.Config.ShapeMode {
		case parameter.ShapeGeometric:
			pts := []vmath.Vec2{ch.Path.At(0), ch.Path.At(1)}
			c.Polyline(project(ctx.Transform, pts), width, col)
		case parameter.ShapeRibbon:
			if ch.HalfWidth > 0 {
				for _, side := range [2]float64{-1, 1} {
					c.Polyline(project(ctx.Transform, ribbonEdge(ch, side*ch.HalfWidth)), width, col)
				}
				continue
			}
			fallthrough
		default:
			pts := geometry.Sample(ch.Path, parameter.PolylineSegments)
			c.Polyline(project(ctx.Transform, pts), width, col)
		}
	}
	return nil
}

func ribbonEdge(ch ChordShape, offset float64) []vmath.Vec2 {
	pts := make([]vmath.Vec2, parameter.PolylineSegments+1)
	for i := range pts {
		pts[i] = geometry.Offset(ch.Path, float64(i)/float64(parameter.PolylineSegments), offset)
	}
	return pts
}

// ParticleLayer renders a particle source through the selector
type ParticleLayer struct {
	Selector *Selector
	Source   func() []particle.Particle
	Show     func(cfg config.Configuration) bool

	mu   sync.Mutex
	last FrameStats
}

// Visible defers to Show; nil shows whenever particle mode is on
func (l *ParticleLayer) Visible(cfg config.Configuration) bool {
	if l.Show == nil {
		return cfg.ParticleMode
	}
	return l.Show(cfg)
}

// Draw renders the current particles and records the frame stats
func (l *ParticleLayer) Draw(ctx FrameContext, _ Canvas) error {
	stats, err := l.Selector.Render(l.Source(), ctx.Config, ctx.Viewport)
	l.mu.Lock()
	l.last = stats
	l.mu.Unlock()
	return err
}

// LastStats returns the stats of the most recent particle frame
func (l *ParticleLayer) LastStats() FrameStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// ResetStats clears stats so a hidden frame reports nothing
func (l *ParticleLayer) ResetStats() {
	l.mu.Lock()
	l.last = FrameStats{}
	l.mu.Unlock()
}

// TextCanvas is implemented by canvases that can place text labels
type TextCanvas interface {
	Text(x, y float64, s string, c color.RGBA)
}

// Label is one node name anchored just outside its arc
type Label struct {
	Arc  geometry.Arc
	Text string
}

// LabelLayer names node arcs on canvases that support text
type LabelLayer struct {
	Labels []Label
}

// Visible follows ShowLabels
func (l *LabelLayer) Visible(cfg config.Configuration) bool { return cfg.ShowLabels }

// Draw places each label at its arc's mid angle; canvases without text are skipped
func (l *LabelLayer) Draw(ctx FrameContext, c Canvas) error {
	tc, ok := c.(TextCanvas)
	if !ok {
		return nil
	}
	for _, lb := range l.Labels {
		if lb.Arc.Degenerate() {
			continue
		}
		p := vmath.Polar(lb.Arc.Mid(), lb.Arc.Radius*parameter.LabelOffset)
		x, y := ctx.Transform.Apply(p.X, p.Y)
		tc.Text(x, y, lb.Text, visual.StatusText)
	}
	return nil
}

// BackgroundLayer clears the frame with a flat color disc behind the diagram
type BackgroundLayer struct {
	Color color.RGBA
}

// Draw fills the layout circle area
func (l *BackgroundLayer) Draw(ctx FrameContext, c Canvas) error {
	if l.Color.A == 0 {
		return nil
	}
	x, y := ctx.Transform.Apply(0, 0)
	c.Circle(x, y, ctx.Transform.Radius(parameter.LayoutRadius), l.Color)
	return nil
}

// NewBackgroundLayer uses the standard background color
func NewBackgroundLayer() *BackgroundLayer {
	return &BackgroundLayer{Color: visual.Background}
}

func arcPoints(a geometry.Arc) []vmath.Vec2 {
	n := parameter.PolylineSegments
	pts := make([]vmath.Vec2, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = a.At(float64(i) / float64(n))
	}
	return pts
}

func project(tr Transform, pts []vmath.Vec2) []vmath.Vec2 {
	for i, p := range pts {
		x, y := tr.Apply(p.X, p.Y)
		pts[i] = vmath.V(x, y)
	}
	return pts
}
