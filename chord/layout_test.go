package chord

import (
	"math"
	"testing"

	"github.com/lixenwraith/chordflow/geometry"
	"github.com/lixenwraith/chordflow/vmath"
)

func w(v float64) *float64 { return &v }

func sampleDataset() Dataset {
	return Dataset{
		Nodes: []Node{{ID: "a", Category: "x"}, {ID: "b", Category: "y"}, {ID: "c", Category: "x"}},
		Links: []Link{
			{Source: "a", Target: "b", Weight: w(3)},
			{Source: "a", Target: "c", Weight: w(1)},
			{Source: "b", Target: "c"},
			{Source: "a", Target: "b", Weight: w(2)},
		},
	}
}

func TestBuildSpansCoverCircle(t *testing.T) {
	opts := DefaultLayoutOptions()
	l := Build(sampleDataset(), opts)

	var total float64
	for _, arc := range l.NodeArcs {
		total += arc.Span()
	}
	want := vmath.TwoPi - opts.Padding*3
	if math.Abs(total-want) > 1e-9 {
		t.Errorf("Expected spans to sum to %f, got %f", want, total)
	}

	// a carries 3+1+2=6, b carries 3+0.5+2=5.5
	ratio := l.NodeArcs["a"].Span() / l.NodeArcs["b"].Span()
	if math.Abs(ratio-6/5.5) > 1e-9 {
		t.Errorf("Span ratio a/b: expected %f, got %f", 6/5.5, ratio)
	}
}

func TestBuildChordIDsAndFlags(t *testing.T) {
	l := Build(sampleDataset(), DefaultLayoutOptions())
	if len(l.Chords) != 4 {
		t.Fatalf("Expected 4 chords, got %d", len(l.Chords))
	}

	tests := []struct {
		id   string
		real bool
	}{
		{"a->b#0", true},
		{"a->c#0", true},
		{"b->c#0", false},
		{"a->b#1", true},
	}
	for i, tt := range tests {
		c := l.Chords[i]
		if c.ID != tt.id {
			t.Errorf("Chord %d: expected ID %q, got %q", i, tt.id, c.ID)
		}
		if c.IsRealConnection != tt.real {
			t.Errorf("Chord %s: expected real=%v", c.ID, tt.real)
		}
		if c.Degenerate() {
			t.Errorf("Chord %s should not be degenerate", c.ID)
		}
	}
	if l.MaxStrength != 3 {
		t.Errorf("Expected max strength 3, got %f", l.MaxStrength)
	}
	if got := len(l.RealConnections()); got != 3 {
		t.Errorf("Expected 3 real connections, got %d", got)
	}
}

func TestBuildThreshold(t *testing.T) {
	opts := DefaultLayoutOptions()
	opts.RealThreshold = 2
	l := Build(sampleDataset(), opts)
	// Strictly above: weight 2 is not real
	if l.Chords[3].IsRealConnection {
		t.Error("Weight equal to threshold must not be real")
	}
	if !l.Chords[0].IsRealConnection {
		t.Error("Weight above threshold must be real")
	}
}

func TestBuildSubArcsDoNotOverlap(t *testing.T) {
	l := Build(sampleDataset(), DefaultLayoutOptions())
	first := l.Chords[0].SourceArc
	second := l.Chords[1].SourceArc
	if second.StartAngle < first.EndAngle-1e-12 {
		t.Errorf("Sub-arcs overlap: %v then %v", first, second)
	}
	node := l.NodeArcs["a"]
	last := l.Chords[3].SourceArc
	if math.Abs(last.EndAngle-node.EndAngle) > 1e-9 {
		t.Errorf("Sub-arcs should fill node arc: %f vs %f", last.EndAngle, node.EndAngle)
	}
}

func TestBuildSelfLink(t *testing.T) {
	ds := Dataset{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Links: []Link{{Source: "a", Target: "a", Weight: w(1)}, {Source: "a", Target: "b", Weight: w(1)}},
	}
	l := Build(ds, DefaultLayoutOptions())
	self := l.Chords[0]
	if !self.SelfChord() {
		t.Fatal("Expected self chord")
	}
	if !self.SourceArc.Equal(self.TargetArc) {
		t.Errorf("Self chord should reuse one sub-arc: %v vs %v", self.SourceArc, self.TargetArc)
	}
}

func TestBuildIsolatedNodeDegenerate(t *testing.T) {
	ds := Dataset{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "lonely"}},
		Links: []Link{{Source: "a", Target: "b", Weight: w(1)}},
	}
	l := Build(ds, DefaultLayoutOptions())
	if !l.NodeArcs["lonely"].Degenerate() {
		t.Error("Node without links should have a degenerate arc")
	}
	if len(l.Chords) != 1 {
		t.Errorf("Expected 1 chord, got %d", len(l.Chords))
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	l := Build(sampleDataset(), DefaultLayoutOptions())
	idx := l.CategoryIndex()
	if idx["x"] != 0 || idx["y"] != 1 {
		t.Errorf("Unexpected category order: %v", l.Categories)
	}
}

func TestRibbonHalfWidth(t *testing.T) {
	// Chord length of a span s on radius r is 2r·sin(s/2)
	wide := geometry.Arc{StartAngle: 0, EndAngle: math.Pi, Radius: 1}
	narrow := geometry.Arc{StartAngle: 2, EndAngle: 2 + math.Pi/3, Radius: 1}
	c := Chord{SourceArc: wide, TargetArc: narrow}
	if got := c.RibbonHalfWidth(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected half of the narrower endpoint (0.5), got %f", got)
	}
}
