package chord

import (
	"math"

	"github.com/lixenwraith/chordflow/geometry"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/vmath"
)

// LayoutOptions tune arc placement and connection classification
type LayoutOptions struct {
	// Padding is the angular gap between node arcs in radians
	Padding float64
	// Radius is the outer circle radius in layout units
	Radius float64
	// RealThreshold is the weight a link must exceed to count as a real connection
	RealThreshold float64
	// PlaceholderWeight is assigned to links without a weight
	PlaceholderWeight float64
}

// DefaultLayoutOptions returns the standard diagram geometry
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		Padding:           parameter.DefaultArcPadding,
		Radius:            parameter.LayoutRadius,
		RealThreshold:     0,
		PlaceholderWeight: parameter.DefaultPlaceholderWeight,
	}
}

// Layout is the derived diagram: one arc per node and the chord list in link order
type Layout struct {
	Nodes       []Node
	NodeArcs    map[string]geometry.Arc
	Chords      []Chord
	MaxStrength float64
	Categories  []string
}

// Build lays out nodes around the circle proportionally to their total link weight and
// allocates each link a sub-arc at both endpoints, like a d3 chord layout
// Nodes with no weight get a zero span, so their chords are degenerate and skipped later
func Build(ds Dataset, opts LayoutOptions) Layout {
	if opts.Radius <= 0 {
		opts.Radius = parameter.LayoutRadius
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}

	index := make(map[string]int, len(ds.Nodes))
	for i, n := range ds.Nodes {
		index[n.ID] = i
	}

	weights := make([]float64, len(ds.Links))
	totals := make([]float64, len(ds.Nodes))
	var sum float64
	for i, l := range ds.Links {
		w := opts.PlaceholderWeight
		if l.Weight != nil && vmath.Finite(*l.Weight) && *l.Weight > 0 {
			w = *l.Weight
		}
		si, okS := index[l.Source]
		ti, okT := index[l.Target]
		if !okS || !okT {
			continue
		}
		weights[i] = w
		totals[si] += w
		if si != ti {
			totals[ti] += w
		}
		sum += 2 * w
		if si == ti {
			sum -= w
		}
	}

	out := Layout{
		Nodes:    ds.Nodes,
		NodeArcs: make(map[string]geometry.Arc, len(ds.Nodes)),
	}

	n := len(ds.Nodes)
	usable := vmath.TwoPi - opts.Padding*float64(n)
	if usable < 0 {
		usable = 0
	}

	angle := 0.0
	for i, node := range ds.Nodes {
		span := 0.0
		if sum > 0 {
			span = usable * totals[i] / sum
		}
		out.NodeArcs[node.ID] = geometry.Arc{StartAngle: angle, EndAngle: angle + span, Radius: opts.Radius}
		angle += span + opts.Padding
	}

	// Per node cursor: fraction of the node arc already handed out to links
	used := make([]float64, n)
	repeats := make(map[[2]string]int)
	categories := make(map[string]bool)

	for i, l := range ds.Links {
		si, okS := index[l.Source]
		ti, okT := index[l.Target]
		if !okS || !okT {
			continue
		}
		w := weights[i]

		srcArc := subArc(out.NodeArcs[l.Source], &used[si], w, totals[si])
		var dstArc geometry.Arc
		if si == ti {
			dstArc = srcArc
		} else {
			dstArc = subArc(out.NodeArcs[l.Target], &used[ti], w, totals[ti])
		}

		key := [2]string{l.Source, l.Target}
		idx := repeats[key]
		repeats[key] = idx + 1

		isReal := l.Weight != nil && vmath.Finite(*l.Weight) && *l.Weight > opts.RealThreshold
		cat := ds.Nodes[si].Category
		targetCat := ds.Nodes[ti].Category
		for _, c := range [2]string{cat, targetCat} {
			if !categories[c] {
				categories[c] = true
				out.Categories = append(out.Categories, c)
			}
		}

		out.Chords = append(out.Chords, Chord{
			ID:               MakeID(l.Source, l.Target, idx),
			Source:           l.Source,
			Target:           l.Target,
			SourceArc:        srcArc,
			TargetArc:        dstArc,
			Strength:         w,
			IsRealConnection: isReal,
			Category:         cat,
			TargetCategory:   targetCat,
		})
		out.MaxStrength = math.Max(out.MaxStrength, w)
	}

	return out
}

// subArc hands out the next w/total share of arc, advancing cursor
func subArc(arc geometry.Arc, cursor *float64, w, total float64) geometry.Arc {
	if total <= 0 {
		return geometry.Arc{StartAngle: arc.StartAngle, EndAngle: arc.StartAngle, Radius: arc.Radius}
	}
	from := *cursor
	to := from + w/total
	*cursor = to
	return arc.Sub(from, math.Min(to, 1))
}

// RealConnections returns the chords that pass the real-connection threshold
func (l Layout) RealConnections() []Chord {
	var out []Chord
	for _, c := range l.Chords {
		if c.IsRealConnection {
			out = append(out, c)
		}
	}
	return out
}

// CategoryIndex maps category names to palette slots in first-seen order
func (l Layout) CategoryIndex() map[string]int {
	m := make(map[string]int, len(l.Categories))
	for i, c := range l.Categories {
		m[c] = i
	}
	return m
}
