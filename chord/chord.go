// Package chord derives the chord set of a diagram from nodes and links
package chord

import (
	"fmt"

	"github.com/lixenwraith/chordflow/geometry"
)

// Node is one dataset entity; Category drives color
type Node struct {
	ID       string `toml:"id" yaml:"id" json:"id"`
	Category string `toml:"category" yaml:"category" json:"category"`
}

// Link connects two nodes; a nil Weight marks a placeholder connection
type Link struct {
	Source string   `toml:"source" yaml:"source" json:"source"`
	Target string   `toml:"target" yaml:"target" json:"target"`
	Weight *float64 `toml:"weight,omitempty" yaml:"weight,omitempty" json:"weight,omitempty"`
}

// Dataset is the validated input supplied by the loading layer
type Dataset struct {
	Nodes []Node `toml:"nodes" yaml:"nodes" json:"nodes"`
	Links []Link `toml:"links" yaml:"links" json:"links"`
}

// Chord is one connection between a source arc and a target arc
// Immutable once derived; rebuilt on every layout change
type Chord struct {
	ID               string
	Source           string
	Target           string
	SourceArc        geometry.Arc
	TargetArc        geometry.Arc
	Strength         float64
	IsRealConnection bool
	Category         string
	TargetCategory   string
}

// Degenerate reports whether either arc cannot anchor particles
func (c Chord) Degenerate() bool {
	return c.SourceArc.Degenerate() || c.TargetArc.Degenerate()
}

// SelfChord reports whether the chord starts and ends on the same node
func (c Chord) SelfChord() bool {
	return c.Source == c.Target
}

// RibbonHalfWidth is half the narrower endpoint's straight-line width
func (c Chord) RibbonHalfWidth() float64 {
	src := c.SourceArc.At(0).Sub(c.SourceArc.At(1)).Len()
	dst := c.TargetArc.At(0).Sub(c.TargetArc.At(1)).Len()
	return min(src, dst) / 2
}

// MakeID builds the stable chord identifier from endpoints and repeat index
func MakeID(source, target string, index int) string {
	return fmt.Sprintf("%s->%s#%d", source, target, index)
}
