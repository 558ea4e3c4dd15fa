package render

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/particle"
	"github.com/lixenwraith/chordflow/vmath"
)

// Accelerated tessellates every particle into a triangle fan and submits them in few batches
// Vertex 0 of each fan is the particle center
type Accelerated struct {
	device  Device
	cache   transformCache
	verts   []Vertex
	indices []uint16

	// unit circle for the current segment count, reused across frames
	segments int
	cos, sin []float64
}

// NewAccelerated creates a batched strategy on device
func NewAccelerated(device Device) *Accelerated {
	return &Accelerated{device: device}
}

// Backend identifies the strategy
func (a *Accelerated) Backend() parameter.Backend { return parameter.BackendAccelerated }

// Resize recomputes the cached transform
func (a *Accelerated) Resize(vp Viewport) { a.cache.get(vp) }

// Transform returns the transform for vp, from cache when unchanged
func (a *Accelerated) Transform(vp Viewport) Transform { return a.cache.get(vp) }

// Available reports whether the device can draw
func (a *Accelerated) Available() bool {
	return a.device != nil && a.device.Available()
}

// Render batches all particles; a device error aborts the frame
func (a *Accelerated) Render(particles []particle.Particle, cfg config.Configuration, vp Viewport) (FrameStats, error) {
	start := time.Now()
	stats := FrameStats{Backend: parameter.BackendAccelerated, Particles: len(particles)}
	if !a.Available() {
		return stats, ErrDeviceUnavailable
	}
	if vp.Empty() || len(particles) == 0 {
		return stats, nil
	}

	tr := a.cache.get(vp)
	n := cfg.AcceleratedQuality.Segments()
	a.prepareFan(n)
	perParticle := n + 1
	a.verts = a.verts[:0]
	a.indices = a.indices[:0]

	for i := range particles {
		if len(a.verts)+perParticle > parameter.MaxBatchVertices {
			if err := a.flush(&stats); err != nil {
				return stats, err
			}
		}
		p := &particles[i]
		cx, cy := tr.Apply(p.X, p.Y)
		rx := tr.Radius(p.Radius)
		ry := rx / tr.Aspect()
		col := Fill(p.Color, p.Opacity)

		base := uint16(len(a.verts))
		a.verts = append(a.verts, Vertex{X: float32(cx), Y: float32(cy), Color: col})
		for k := 0; k < n; k++ {
			a.verts = append(a.verts, Vertex{
				X:     float32(cx + rx*a.cos[k]),
				Y:     float32(cy + ry*a.sin[k]),
				Color: col,
			})
		}
		for k := 0; k < n; k++ {
			next := (k+1)%n + 1
			a.indices = append(a.indices, base, base+uint16(k+1), base+uint16(next))
		}
		stats.Primitives++
	}
	if err := a.flush(&stats); err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	return stats, nil
}

func (a *Accelerated) flush(stats *FrameStats) error {
	if len(a.verts) == 0 {
		return nil
	}
	if err := a.device.DrawTriangles(a.verts, a.indices); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	stats.DrawCalls++
	stats.Vertices += len(a.verts)
	a.verts = a.verts[:0]
	a.indices = a.indices[:0]
	return nil
}

func (a *Accelerated) prepareFan(n int) {
	if a.segments == n {
		return
	}
	a.segments = n
	a.cos = make([]float64, n)
	a.sin = make([]float64, n)
	for k := 0; k < n; k++ {
		theta := vmath.TwoPi * float64(k) / float64(n)
		a.cos[k] = math.Cos(theta)
		a.sin[k] = math.Sin(theta)
	}
}
