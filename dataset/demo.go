package dataset

import (
	"fmt"
	"math"

	"github.com/lixenwraith/chordflow/chord"
	"github.com/lixenwraith/chordflow/vmath"
)

var demoCategories = []string{"alpha", "beta", "gamma", "delta", "epsilon"}

// Demo builds a reproducible dataset with the requested node and link counts
// Every fifth link is a weightless placeholder; a few links loop back to their source
func Demo(nodes, links int, seed uint64) chord.Dataset {
	if nodes < 1 {
		nodes = 1
	}
	if links < 1 {
		links = 1
	}
	rng := vmath.NewFastRand(seed)

	ds := chord.Dataset{
		Nodes: make([]chord.Node, nodes),
		Links: make([]chord.Link, 0, links),
	}
	for i := range ds.Nodes {
		ds.Nodes[i] = chord.Node{
			ID:       fmt.Sprintf("n%02d", i),
			Category: demoCategories[i%len(demoCategories)],
		}
	}

	for i := 0; i < links; i++ {
		src := rng.Intn(nodes)
		dst := rng.Intn(nodes)
		// Mostly distinct endpoints; self-links stay rare
		if dst == src && nodes > 1 && rng.Intn(8) != 0 {
			dst = (src + 1 + rng.Intn(nodes-1)) % nodes
		}
		link := chord.Link{Source: ds.Nodes[src].ID, Target: ds.Nodes[dst].ID}
		if i%5 != 4 {
			weight := math.Round(rng.Range(1, 20)*10) / 10
			link.Weight = &weight
		}
		ds.Links = append(ds.Links, link)
	}
	return ds
}
