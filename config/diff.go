package config

import "strings"

// Change classifies which consumers a configuration change affects
type Change uint8

const (
	// ChangeStructure invalidates the layout and the generated particle set
	ChangeStructure Change = 1 << iota
	// ChangeScheduling alters how generation is paced but not its output
	ChangeScheduling
	// ChangeBackend requests a render backend reselection
	ChangeBackend
	// ChangeStyle affects chord and arc drawing only
	ChangeStyle
	// ChangeAnimation affects per-frame motion only
	ChangeAnimation
	// ChangeLayers toggles overlay visibility
	ChangeLayers
)

var changeNames = []string{"structure", "scheduling", "backend", "style", "animation", "layers"}

// Has reports whether all bits of flag are set
func (c Change) Has(flag Change) bool {
	return c&flag == flag && flag != 0
}

// String lists the set categories, pipe-separated
func (c Change) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for i, name := range changeNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Diff compares two configurations field by field
// Only ChangeStructure requires particle regeneration
func Diff(prev, next Configuration) Change {
	var c Change
	mark := func(flag Change, differs bool) {
		if differs {
			c |= flag
		}
	}

	mark(ChangeStructure, prev.ParticleMode != next.ParticleMode ||
		prev.ParticleDensity != next.ParticleDensity ||
		prev.ParticleSize != next.ParticleSize ||
		prev.ParticleSizeVariation != next.ParticleSizeVariation ||
		prev.ParticleDistribution != next.ParticleDistribution ||
		prev.ParticleSpread != next.ParticleSpread ||
		prev.ParticleGaussianSigma != next.ParticleGaussianSigma ||
		prev.ParticleOpacity != next.ParticleOpacity ||
		prev.ParticleSeed != next.ParticleSeed ||
		prev.MaxParticlesPerChord != next.MaxParticlesPerChord ||
		prev.MaxTotalParticles != next.MaxTotalParticles ||
		prev.ParticlesOnlyRealConnections != next.ParticlesOnlyRealConnections ||
		prev.RealConnectionThreshold != next.RealConnectionThreshold ||
		prev.Curvature != next.Curvature ||
		prev.ArcPadding != next.ArcPadding)

	mark(ChangeScheduling, prev.ProgressiveGenerationEnabled != next.ProgressiveGenerationEnabled ||
		prev.GenerationBatchSize != next.GenerationBatchSize ||
		prev.BatchesPerTick != next.BatchesPerTick)

	mark(ChangeBackend, prev.UseAcceleratedRenderer != next.UseAcceleratedRenderer ||
		prev.AcceleratedQuality != next.AcceleratedQuality)

	mark(ChangeStyle, prev.ChordOpacity != next.ChordOpacity ||
		prev.ChordWidth != next.ChordWidth ||
		prev.ArcWidth != next.ArcWidth ||
		prev.ShapeMode != next.ShapeMode)

	mark(ChangeAnimation, prev.AnimationEnabled != next.AnimationEnabled ||
		prev.FlowSpeed != next.FlowSpeed ||
		prev.PulseAmplitude != next.PulseAmplitude ||
		prev.PulseFrequency != next.PulseFrequency ||
		prev.Turbulence != next.Turbulence ||
		prev.FadeInStiffness != next.FadeInStiffness)

	mark(ChangeLayers, prev.ShowArcs != next.ShowArcs ||
		prev.ShowChords != next.ShowChords ||
		prev.ShowLabels != next.ShowLabels)

	return c
}
