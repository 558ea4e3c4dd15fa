package config

import (
	"github.com/lixenwraith/chordflow/parameter"
)

// Update is a partial configuration; nil fields are left unchanged by Apply
type Update struct {
	ChordOpacity *float64             `toml:"chord_opacity,omitempty" yaml:"chord_opacity,omitempty" json:"chord_opacity,omitempty"`
	ChordWidth   *float64             `toml:"chord_width,omitempty" yaml:"chord_width,omitempty" json:"chord_width,omitempty"`
	ArcWidth     *float64             `toml:"arc_width,omitempty" yaml:"arc_width,omitempty" json:"arc_width,omitempty"`
	Curvature    *float64             `toml:"curvature,omitempty" yaml:"curvature,omitempty" json:"curvature,omitempty"`
	ShapeMode    *parameter.ShapeMode `toml:"shape_mode,omitempty" yaml:"shape_mode,omitempty" json:"shape_mode,omitempty"`

	ParticleMode                 *bool                   `toml:"particle_mode,omitempty" yaml:"particle_mode,omitempty" json:"particle_mode,omitempty"`
	ParticleDensity              *float64                `toml:"particle_density,omitempty" yaml:"particle_density,omitempty" json:"particle_density,omitempty"`
	ParticleSize                 *float64                `toml:"particle_size,omitempty" yaml:"particle_size,omitempty" json:"particle_size,omitempty"`
	ParticleSizeVariation        *float64                `toml:"particle_size_variation,omitempty" yaml:"particle_size_variation,omitempty" json:"particle_size_variation,omitempty"`
	ParticleDistribution         *parameter.Distribution `toml:"particle_distribution,omitempty" yaml:"particle_distribution,omitempty" json:"particle_distribution,omitempty"`
	ParticleSpread               *float64                `toml:"particle_spread,omitempty" yaml:"particle_spread,omitempty" json:"particle_spread,omitempty"`
	ParticleGaussianSigma        *float64                `toml:"particle_gaussian_sigma,omitempty" yaml:"particle_gaussian_sigma,omitempty" json:"particle_gaussian_sigma,omitempty"`
	ParticleOpacity              *float64                `toml:"particle_opacity,omitempty" yaml:"particle_opacity,omitempty" json:"particle_opacity,omitempty"`
	ParticleSeed                 *uint64                 `toml:"particle_seed,omitempty" yaml:"particle_seed,omitempty" json:"particle_seed,omitempty"`
	MaxParticlesPerChord         *int                    `toml:"max_particles_per_chord,omitempty" yaml:"max_particles_per_chord,omitempty" json:"max_particles_per_chord,omitempty"`
	MaxTotalParticles            *int                    `toml:"max_total_particles,omitempty" yaml:"max_total_particles,omitempty" json:"max_total_particles,omitempty"`
	ProgressiveGenerationEnabled *bool                   `toml:"progressive_generation_enabled,omitempty" yaml:"progressive_generation_enabled,omitempty" json:"progressive_generation_enabled,omitempty"`
	GenerationBatchSize          *int                    `toml:"generation_batch_size,omitempty" yaml:"generation_batch_size,omitempty" json:"generation_batch_size,omitempty"`
	BatchesPerTick               *int                    `toml:"batches_per_tick,omitempty" yaml:"batches_per_tick,omitempty" json:"batches_per_tick,omitempty"`
	ParticlesOnlyRealConnections *bool                   `toml:"particles_only_real_connections,omitempty" yaml:"particles_only_real_connections,omitempty" json:"particles_only_real_connections,omitempty"`
	RealConnectionThreshold      *float64                `toml:"real_connection_threshold,omitempty" yaml:"real_connection_threshold,omitempty" json:"real_connection_threshold,omitempty"`

	UseAcceleratedRenderer *bool              `toml:"use_accelerated_renderer,omitempty" yaml:"use_accelerated_renderer,omitempty" json:"use_accelerated_renderer,omitempty"`
	AcceleratedQuality     *parameter.Quality `toml:"accelerated_quality,omitempty" yaml:"accelerated_quality,omitempty" json:"accelerated_quality,omitempty"`

	AnimationEnabled *bool    `toml:"animation_enabled,omitempty" yaml:"animation_enabled,omitempty" json:"animation_enabled,omitempty"`
	FlowSpeed        *float64 `toml:"flow_speed,omitempty" yaml:"flow_speed,omitempty" json:"flow_speed,omitempty"`
	PulseAmplitude   *float64 `toml:"pulse_amplitude,omitempty" yaml:"pulse_amplitude,omitempty" json:"pulse_amplitude,omitempty"`
	PulseFrequency   *float64 `toml:"pulse_frequency,omitempty" yaml:"pulse_frequency,omitempty" json:"pulse_frequency,omitempty"`
	Turbulence       *float64 `toml:"turbulence,omitempty" yaml:"turbulence,omitempty" json:"turbulence,omitempty"`
	FadeInStiffness  *float64 `toml:"fade_in_stiffness,omitempty" yaml:"fade_in_stiffness,omitempty" json:"fade_in_stiffness,omitempty"`

	ShowArcs   *bool `toml:"show_arcs,omitempty" yaml:"show_arcs,omitempty" json:"show_arcs,omitempty"`
	ShowChords *bool `toml:"show_chords,omitempty" yaml:"show_chords,omitempty" json:"show_chords,omitempty"`
	ShowLabels *bool `toml:"show_labels,omitempty" yaml:"show_labels,omitempty" json:"show_labels,omitempty"`

	ArcPadding *float64 `toml:"arc_padding,omitempty" yaml:"arc_padding,omitempty" json:"arc_padding,omitempty"`
}

// Ptr returns a pointer to v, for building updates inline
func Ptr[T any](v T) *T {
	return &v
}

// Apply merges updates into base in order, last write wins per field
// Version increments once per call if any field changed; no cross-field validation is applied
func Apply(base Configuration, updates ...Update) Configuration {
	next := base
	changed := false
	for _, u := range updates {
		changed = u.merge(&next) || changed
	}
	if changed {
		next.Version = base.Version + 1
	}
	return next
}

// IsEmpty reports whether the update sets no field
func (u Update) IsEmpty() bool {
	return u == Update{}
}

func (u Update) merge(c *Configuration) bool {
	changed := false
	set := func(ok bool) { changed = changed || ok }

	set(assign(&c.ChordOpacity, u.ChordOpacity))
	set(assign(&c.ChordWidth, u.ChordWidth))
	set(assign(&c.ArcWidth, u.ArcWidth))
	set(assign(&c.Curvature, u.Curvature))
	set(assign(&c.ShapeMode, u.ShapeMode))

	set(assign(&c.ParticleMode, u.ParticleMode))
	set(assign(&c.ParticleDensity, u.ParticleDensity))
	set(assign(&c.ParticleSize, u.ParticleSize))
	set(assign(&c.ParticleSizeVariation, u.ParticleSizeVariation))
	set(assign(&c.ParticleDistribution, u.ParticleDistribution))
	set(assign(&c.ParticleSpread, u.ParticleSpread))
	set(assign(&c.ParticleGaussianSigma, u.ParticleGaussianSigma))
	set(assign(&c.ParticleOpacity, u.ParticleOpacity))
	set(assign(&c.ParticleSeed, u.ParticleSeed))
	set(assign(&c.MaxParticlesPerChord, u.MaxParticlesPerChord))
	set(assign(&c.MaxTotalParticles, u.MaxTotalParticles))
	set(assign(&c.ProgressiveGenerationEnabled, u.ProgressiveGenerationEnabled))
	set(assign(&c.GenerationBatchSize, u.GenerationBatchSize))
	set(assign(&c.BatchesPerTick, u.BatchesPerTick))
	set(assign(&c.ParticlesOnlyRealConnections, u.ParticlesOnlyRealConnections))
	set(assign(&c.RealConnectionThreshold, u.RealConnectionThreshold))

	set(assign(&c.UseAcceleratedRenderer, u.UseAcceleratedRenderer))
	set(assign(&c.AcceleratedQuality, u.AcceleratedQuality))

	set(assign(&c.AnimationEnabled, u.AnimationEnabled))
	set(assign(&c.FlowSpeed, u.FlowSpeed))
	set(assign(&c.PulseAmplitude, u.PulseAmplitude))
	set(assign(&c.PulseFrequency, u.PulseFrequency))
	set(assign(&c.Turbulence, u.Turbulence))
	set(assign(&c.FadeInStiffness, u.FadeInStiffness))

	set(assign(&c.ShowArcs, u.ShowArcs))
	set(assign(&c.ShowChords, u.ShowChords))
	set(assign(&c.ShowLabels, u.ShowLabels))

	set(assign(&c.ArcPadding, u.ArcPadding))
	return changed
}

// assign copies *src into *dst when present and reports whether the value changed
func assign[T comparable](dst *T, src *T) bool {
	if src == nil || *dst == *src {
		return false
	}
	*dst = *src
	return true
}
