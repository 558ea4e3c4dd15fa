package render

import (
	"errors"
	"time"

	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/particle"
)

var (
	// ErrReentrantRender is returned when Render is invoked while a frame is in progress
	ErrReentrantRender = errors.New("render: re-entrant render call")
	// ErrDeviceUnavailable is returned when the accelerated device cannot draw
	ErrDeviceUnavailable = errors.New("render: accelerated device unavailable")
)

// FrameStats describe one particle frame
type FrameStats struct {
	Backend    parameter.Backend
	Particles  int
	Primitives int
	DrawCalls  int
	Vertices   int
	Duration   time.Duration
}

// RenderTimeMs returns the frame duration in milliseconds
func (s FrameStats) RenderTimeMs() float64 {
	return float64(s.Duration) / float64(time.Millisecond)
}

// Strategy is one particle backend
type Strategy interface {
	Backend() parameter.Backend
	Render(particles []particle.Particle, cfg config.Configuration, vp Viewport) (FrameStats, error)
	Resize(vp Viewport)
}
