// Package particle samples and animates the visual points carried along chord paths
package particle

import (
	"hash/fnv"
	"image/color"
	"math"

	"github.com/lixenwraith/chordflow/parameter"
)

// Particle is one visual point belonging to exactly one chord
// X, Y hold the resolved layout position so renderers never need the path
type Particle struct {
	ChordID       string
	T             float64
	LateralOffset float64
	Radius        float64
	Opacity       float64
	Color         color.RGBA
	Phase         float64
	X, Y          float64
}

// SizeParams drive per-particle radius: Base*(1 + U(-Variation, Variation))
type SizeParams struct {
	Base      float64
	Variation float64
}

// MaxRadius is the upper bound of any radius sampled from p
func (p SizeParams) MaxRadius() float64 {
	s := p.sanitized()
	return s.Base * (1 + s.Variation)
}

func (p SizeParams) sanitized() SizeParams {
	if !(p.Base >= parameter.MinParticleRadius) || math.IsInf(p.Base, 0) {
		p.Base = parameter.MinParticleRadius
	}
	if !(p.Variation > 0) {
		p.Variation = 0
	}
	if p.Variation > parameter.MaxSizeVariation {
		p.Variation = parameter.MaxSizeVariation
	}
	return p
}

// CountFor maps chord strength to a particle count
// Strongest chord at density 1 gets ParticlesPerStrength; any positive density yields at least one
func CountFor(strength, maxStrength, density float64, max int) int {
	if !(density > 0) || !(strength > 0) || max <= 0 {
		return 0
	}
	if !(maxStrength > 0) {
		maxStrength = strength
	}
	if density > parameter.MaxParticleDensity {
		density = parameter.MaxParticleDensity
	}
	n := math.Round(density * parameter.ParticlesPerStrength * strength / maxStrength)
	if n < 1 {
		n = 1
	}
	if n > float64(max) {
		return max
	}
	return int(n)
}

// SeedFor derives a stable per-chord seed so unrelated chords never share a sequence
func SeedFor(chordID string, base uint64) uint64 {
	h := fnv.New64a()
	h.Write([]byte(chordID))
	return h.Sum64() ^ base
}
