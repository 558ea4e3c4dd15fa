package config

import (
	"math"

	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/vmath"
)

// Sanitize returns a copy with every field clamped to its valid range
// Non-finite numbers fall back to the default; unknown enum values fall back to the default
func (c Configuration) Sanitize() Configuration {
	d := Default()

	c.ChordOpacity = clampField(c.ChordOpacity, 0, 1, d.ChordOpacity)
	c.ChordWidth = clampField(c.ChordWidth, 0, parameter.MaxChordWidth, d.ChordWidth)
	c.ArcWidth = clampField(c.ArcWidth, 0, parameter.MaxArcWidth, d.ArcWidth)
	c.Curvature = clampField(c.Curvature, 0, parameter.MaxCurvature, d.Curvature)
	if !c.ShapeMode.Valid() {
		c.ShapeMode = d.ShapeMode
	}

	c.ParticleDensity = clampField(c.ParticleDensity, 0, parameter.MaxParticleDensity, d.ParticleDensity)
	c.ParticleSize = clampField(c.ParticleSize, parameter.MinParticleRadius, parameter.LayoutRadius, d.ParticleSize)
	c.ParticleSizeVariation = clampField(c.ParticleSizeVariation, 0, parameter.MaxSizeVariation, d.ParticleSizeVariation)
	if !c.ParticleDistribution.Valid() {
		c.ParticleDistribution = parameter.ParseDistribution(string(c.ParticleDistribution))
	}
	c.ParticleSpread = clampField(c.ParticleSpread, 0, parameter.MaxParticleSpread, d.ParticleSpread)
	c.ParticleGaussianSigma = clampField(c.ParticleGaussianSigma, 0, parameter.MaxGaussianSigma, d.ParticleGaussianSigma)
	c.ParticleOpacity = clampField(c.ParticleOpacity, 0, 1, d.ParticleOpacity)
	c.MaxParticlesPerChord = vmath.ClampInt(c.MaxParticlesPerChord, 0, parameter.MaxParticlesPerChordLimit)
	c.MaxTotalParticles = vmath.ClampInt(c.MaxTotalParticles, 0, parameter.MaxTotalParticlesLimit)
	c.GenerationBatchSize = vmath.ClampInt(c.GenerationBatchSize, 1, parameter.MaxBatchSize)
	c.BatchesPerTick = vmath.ClampInt(c.BatchesPerTick, 1, parameter.MaxBatchesPerTick)
	c.RealConnectionThreshold = clampField(c.RealConnectionThreshold, 0, math.MaxFloat64, d.RealConnectionThreshold)

	if !c.AcceleratedQuality.Valid() {
		c.AcceleratedQuality = d.AcceleratedQuality
	}

	c.FlowSpeed = clampField(c.FlowSpeed, -parameter.MaxFlowSpeed, parameter.MaxFlowSpeed, d.FlowSpeed)
	c.PulseAmplitude = clampField(c.PulseAmplitude, 0, 1, d.PulseAmplitude)
	c.PulseFrequency = clampField(c.PulseFrequency, 0, parameter.MaxPulseFrequency, d.PulseFrequency)
	c.Turbulence = clampField(c.Turbulence, 0, parameter.MaxTurbulence, d.Turbulence)
	if !(c.FadeInStiffness > 0) {
		c.FadeInStiffness = d.FadeInStiffness
	}
	c.FadeInStiffness = clampField(c.FadeInStiffness, 0, parameter.MaxFadeInFrequency, d.FadeInStiffness)

	c.ArcPadding = clampField(c.ArcPadding, 0, parameter.MaxArcPadding, d.ArcPadding)
	return c
}

func clampField(v, lo, hi, fallback float64) float64 {
	if !vmath.Finite(v) {
		return fallback
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
