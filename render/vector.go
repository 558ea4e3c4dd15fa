package render

import (
	"time"

	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/particle"
)

// Vector draws one canvas circle per particle
type Vector struct {
	canvas Canvas
	cache  transformCache
}

// NewVector creates a vector strategy drawing on canvas
func NewVector(canvas Canvas) *Vector {
	return &Vector{canvas: canvas}
}

// Backend identifies the strategy
func (v *Vector) Backend() parameter.Backend { return parameter.BackendVector }

// Resize recomputes the cached transform
func (v *Vector) Resize(vp Viewport) { v.cache.get(vp) }

// Transform returns the transform for vp, from cache when unchanged
func (v *Vector) Transform(vp Viewport) Transform { return v.cache.get(vp) }

// Render emits one primitive per particle
func (v *Vector) Render(particles []particle.Particle, _ config.Configuration, vp Viewport) (FrameStats, error) {
	start := time.Now()
	stats := FrameStats{Backend: parameter.BackendVector, Particles: len(particles)}
	if vp.Empty() {
		return stats, nil
	}
	tr := v.cache.get(vp)
	for i := range particles {
		p := &particles[i]
		x, y := tr.Apply(p.X, p.Y)
		v.canvas.Circle(x, y, tr.Radius(p.Radius), Fill(p.Color, p.Opacity))
	}
	stats.Primitives = len(particles)
	stats.DrawCalls = len(particles)
	stats.Duration = time.Since(start)
	return stats, nil
}
