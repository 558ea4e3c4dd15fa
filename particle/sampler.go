package particle

import (
	"image/color"
	"math"

	"github.com/lixenwraith/chordflow/geometry"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/parameter/visual"
	"github.com/lixenwraith/chordflow/vmath"
)

// Sampler holds the per-chord inputs of one sampling pass
type Sampler struct {
	ChordID string

	// Spread is the lateral half-width in layout units
	Spread float64

	// GaussianSigma is the standard deviation of gaussian lateral offsets as a fraction of Spread
	GaussianSigma float64

	// Opacity is the centerline opacity before edge fade
	Opacity float64

	SourceColor color.RGBA
	TargetColor color.RGBA
}

// Sample places count particles along path
// Output is a pure function of the inputs and seed
func (s Sampler) Sample(path geometry.Path, count int, dist parameter.Distribution, size SizeParams, seed uint64) []Particle {
	if count <= 0 || path == nil {
		return []Particle{}
	}

	rng := vmath.NewFastRand(seed)
	size = size.sanitized()
	spread := s.Spread
	if !(spread > 0) || math.IsInf(spread, 0) {
		spread = 0
	}
	sigma := vmath.Clamp(s.GaussianSigma, 0, parameter.MaxGaussianSigma)

	out := make([]Particle, count)
	for i := range out {
		var t, lateral float64
		switch dist {
		case parameter.DistributionRandom:
			t = rng.Float64()
			lateral = rng.Range(-spread, spread)
		case parameter.DistributionGaussian:
			t = rng.Float64()
			lateral = vmath.Clamp(rng.Norm()*sigma*spread, -spread, spread)
		default:
			if count == 1 {
				t = 0.5
			} else {
				t = float64(i) / float64(count-1)
			}
			lateral = rng.Range(-spread, spread)
		}

		radius := size.Base * (1 + rng.Range(-size.Variation, size.Variation))
		if radius < parameter.MinParticleRadius {
			radius = parameter.MinParticleRadius
		}

		fade := 0.0
		if spread > 0 {
			fade = parameter.EdgeFade * math.Abs(lateral) / spread
		}
		opacity := vmath.Clamp(s.Opacity*(1-fade), parameter.MinParticleOpacity, 1)

		pos := geometry.Offset(path, t, lateral)
		out[i] = Particle{
			ChordID:       s.ChordID,
			T:             t,
			LateralOffset: lateral,
			Radius:        radius,
			Opacity:       opacity,
			Color:         visual.Gradient(s.SourceColor, s.TargetColor, t),
			Phase:         rng.Range(0, vmath.TwoPi),
			X:             pos.X,
			Y:             pos.Y,
		}
	}
	return out
}
