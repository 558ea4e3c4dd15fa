package particle

import (
	"math"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/chordflow/geometry"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/vmath"
)

// Perlin generator shape
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
)

// AnimationParams tune the per-frame motion applied on top of generated particles
type AnimationParams struct {
	Enabled bool

	// FlowSpeed advances t in path fractions per second, wrapping at 1
	FlowSpeed float64

	// PulseAmplitude scales opacity by 1 + A*sin(phase + PulseFrequency*clock)
	PulseAmplitude float64
	PulseFrequency float64

	// Turbulence is the peak lateral wobble in layout units
	Turbulence float64

	// FadeInFrequency is the spring angular frequency used when a chord's particles first appear
	FadeInFrequency float64
}

// DefaultAnimationParams returns the standard motion settings
func DefaultAnimationParams() AnimationParams {
	return AnimationParams{
		Enabled:         true,
		FlowSpeed:       parameter.DefaultFlowSpeed,
		PulseAmplitude:  parameter.DefaultPulseAmplitude,
		PulseFrequency:  parameter.DefaultPulseFrequency,
		Turbulence:      parameter.DefaultTurbulence,
		FadeInFrequency: parameter.DefaultFadeInFrequency,
	}
}

// fadeState is the spawning → alive lifecycle of one chord's particles
type fadeState struct {
	pos, vel float64
	settled  bool
	frame    uint64
}

// Animator derives per-frame particle copies from a generated set
// Not safe for concurrent use; owned by the frame loop
type Animator struct {
	params AnimationParams
	noise  *perlin.Perlin
	fade   map[string]*fadeState
	clock  float64
	frame  uint64
}

// NewAnimator creates an animator whose turbulence field is seeded by seed
func NewAnimator(params AnimationParams, seed int64) *Animator {
	return &Animator{
		params: params,
		noise:  perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed),
		fade:   make(map[string]*fadeState),
	}
}

// SetParams replaces motion settings without resetting fade state
func (a *Animator) SetParams(params AnimationParams) {
	a.params = params
}

// Params returns the current motion settings
func (a *Animator) Params() AnimationParams {
	return a.params
}

// Reset forgets fade state so the next frame fades every chord in again
func (a *Animator) Reset() {
	clear(a.fade)
	a.clock = 0
}

// Clock returns accumulated animation time in seconds
func (a *Animator) Clock() float64 {
	return a.clock
}

// Settled reports whether every chord seen so far has finished fading in
func (a *Animator) Settled() bool {
	for _, f := range a.fade {
		if !f.settled {
			return false
		}
	}
	return true
}

// Frame writes animated copies of src into dst and returns it
// src is never mutated; paths missing for a chord keep the generated position
func (a *Animator) Frame(dst, src []Particle, paths map[string]geometry.Path, elapsed time.Duration) []Particle {
	dst = append(dst[:0], src...)
	if !a.params.Enabled {
		return dst
	}

	dt := elapsed.Seconds()
	if dt < 0 {
		dt = 0
	}
	a.clock += dt
	a.frame++

	var spring harmonica.Spring
	if dt > 0 {
		spring = harmonica.NewSpring(dt, a.params.FadeInFrequency, parameter.FadeInDamping)
	}

	for i := range dst {
		p := &dst[i]
		alpha := a.step(p.ChordID, spring, dt > 0)

		t := p.T
		if a.params.FlowSpeed != 0 {
			t = vmath.Wrap01(t + a.params.FlowSpeed*a.clock)
		}
		lateral := p.LateralOffset
		if a.params.Turbulence > 0 {
			lateral += a.params.Turbulence * a.noise.Noise2D(p.Phase, a.clock*parameter.TurbulenceScale)
		}
		if path, ok := paths[p.ChordID]; ok && path != nil && (t != p.T || lateral != p.LateralOffset) {
			pos := geometry.Offset(path, t, lateral)
			p.X, p.Y = pos.X, pos.Y
		}
		p.T = t
		p.LateralOffset = lateral

		pulse := 1.0
		if a.params.PulseAmplitude != 0 {
			pulse = 1 + a.params.PulseAmplitude*math.Sin(p.Phase+a.params.PulseFrequency*a.clock)
		}
		p.Opacity = vmath.Clamp01(p.Opacity * alpha * pulse)
	}
	return dst
}

// step advances a chord's fade spring at most once per frame and returns its visibility
func (a *Animator) step(chordID string, spring harmonica.Spring, advance bool) float64 {
	f, ok := a.fade[chordID]
	if !ok {
		f = &fadeState{}
		a.fade[chordID] = f
	}
	if f.settled {
		return 1
	}
	if advance && f.frame != a.frame {
		f.frame = a.frame
		f.pos, f.vel = spring.Update(f.pos, f.vel, 1)
		if f.pos >= parameter.FadeInSettled {
			f.pos, f.vel, f.settled = 1, 0, true
		}
	}
	return vmath.Clamp01(f.pos)
}
