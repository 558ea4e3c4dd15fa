// Package config holds the configuration record shared by every engine component.
// The host owns it; components receive it by value and never write to it.
package config

import (
	"github.com/lixenwraith/chordflow/parameter"
)

// Configuration is the full set of tunables
// Values are populated from defaults, the config file, CHORDFLOW_* env vars and flags
type Configuration struct {
	// Version increments on every Apply that changes a field
	Version uint64 `mapstructure:"-" toml:"-" yaml:"-" json:"-"`

	// Styling
	ChordOpacity float64             `mapstructure:"chord_opacity" toml:"chord_opacity" yaml:"chord_opacity" json:"chord_opacity"`
	ChordWidth   float64             `mapstructure:"chord_width" toml:"chord_width" yaml:"chord_width" json:"chord_width"`
	ArcWidth     float64             `mapstructure:"arc_width" toml:"arc_width" yaml:"arc_width" json:"arc_width"`
	Curvature    float64             `mapstructure:"curvature" toml:"curvature" yaml:"curvature" json:"curvature"`
	ShapeMode    parameter.ShapeMode `mapstructure:"shape_mode" toml:"shape_mode" yaml:"shape_mode" json:"shape_mode"`

	// Particles
	ParticleMode                 bool                   `mapstructure:"particle_mode" toml:"particle_mode" yaml:"particle_mode" json:"particle_mode"`
	ParticleDensity              float64                `mapstructure:"particle_density" toml:"particle_density" yaml:"particle_density" json:"particle_density"`
	ParticleSize                 float64                `mapstructure:"particle_size" toml:"particle_size" yaml:"particle_size" json:"particle_size"`
	ParticleSizeVariation        float64                `mapstructure:"particle_size_variation" toml:"particle_size_variation" yaml:"particle_size_variation" json:"particle_size_variation"`
	ParticleDistribution         parameter.Distribution `mapstructure:"particle_distribution" toml:"particle_distribution" yaml:"particle_distribution" json:"particle_distribution"`
	ParticleSpread               float64                `mapstructure:"particle_spread" toml:"particle_spread" yaml:"particle_spread" json:"particle_spread"`
	ParticleGaussianSigma        float64                `mapstructure:"particle_gaussian_sigma" toml:"particle_gaussian_sigma" yaml:"particle_gaussian_sigma" json:"particle_gaussian_sigma"`
	ParticleOpacity              float64                `mapstructure:"particle_opacity" toml:"particle_opacity" yaml:"particle_opacity" json:"particle_opacity"`
	ParticleSeed                 uint64                 `mapstructure:"particle_seed" toml:"particle_seed" yaml:"particle_seed" json:"particle_seed"`
	MaxParticlesPerChord         int                    `mapstructure:"max_particles_per_chord" toml:"max_particles_per_chord" yaml:"max_particles_per_chord" json:"max_particles_per_chord"`
	MaxTotalParticles            int                    `mapstructure:"max_total_particles" toml:"max_total_particles" yaml:"max_total_particles" json:"max_total_particles"`
	ProgressiveGenerationEnabled bool                   `mapstructure:"progressive_generation_enabled" toml:"progressive_generation_enabled" yaml:"progressive_generation_enabled" json:"progressive_generation_enabled"`
	GenerationBatchSize          int                    `mapstructure:"generation_batch_size" toml:"generation_batch_size" yaml:"generation_batch_size" json:"generation_batch_size"`
	BatchesPerTick               int                    `mapstructure:"batches_per_tick" toml:"batches_per_tick" yaml:"batches_per_tick" json:"batches_per_tick"`
	ParticlesOnlyRealConnections bool                   `mapstructure:"particles_only_real_connections" toml:"particles_only_real_connections" yaml:"particles_only_real_connections" json:"particles_only_real_connections"`
	RealConnectionThreshold      float64                `mapstructure:"real_connection_threshold" toml:"real_connection_threshold" yaml:"real_connection_threshold" json:"real_connection_threshold"`

	// Render
	UseAcceleratedRenderer bool              `mapstructure:"use_accelerated_renderer" toml:"use_accelerated_renderer" yaml:"use_accelerated_renderer" json:"use_accelerated_renderer"`
	AcceleratedQuality     parameter.Quality `mapstructure:"accelerated_quality" toml:"accelerated_quality" yaml:"accelerated_quality" json:"accelerated_quality"`

	// Animation
	AnimationEnabled bool    `mapstructure:"animation_enabled" toml:"animation_enabled" yaml:"animation_enabled" json:"animation_enabled"`
	FlowSpeed        float64 `mapstructure:"flow_speed" toml:"flow_speed" yaml:"flow_speed" json:"flow_speed"`
	PulseAmplitude   float64 `mapstructure:"pulse_amplitude" toml:"pulse_amplitude" yaml:"pulse_amplitude" json:"pulse_amplitude"`
	PulseFrequency   float64 `mapstructure:"pulse_frequency" toml:"pulse_frequency" yaml:"pulse_frequency" json:"pulse_frequency"`
	Turbulence       float64 `mapstructure:"turbulence" toml:"turbulence" yaml:"turbulence" json:"turbulence"`
	FadeInStiffness  float64 `mapstructure:"fade_in_stiffness" toml:"fade_in_stiffness" yaml:"fade_in_stiffness" json:"fade_in_stiffness"`

	// Layers
	ShowArcs   bool `mapstructure:"show_arcs" toml:"show_arcs" yaml:"show_arcs" json:"show_arcs"`
	ShowChords bool `mapstructure:"show_chords" toml:"show_chords" yaml:"show_chords" json:"show_chords"`
	ShowLabels bool `mapstructure:"show_labels" toml:"show_labels" yaml:"show_labels" json:"show_labels"`

	// Layout
	ArcPadding float64 `mapstructure:"arc_padding" toml:"arc_padding" yaml:"arc_padding" json:"arc_padding"`
}

// Default returns the built-in configuration
func Default() Configuration {
	return Configuration{
		ChordOpacity: parameter.DefaultChordOpacity,
		ChordWidth:   parameter.DefaultChordWidth,
		ArcWidth:     parameter.DefaultArcWidth,
		Curvature:    parameter.DefaultCurvature,
		ShapeMode:    parameter.ShapeRibbon,

		ParticleMode:                 true,
		ParticleDensity:              parameter.DefaultParticleDensity,
		ParticleSize:                 parameter.DefaultParticleSize,
		ParticleSizeVariation:        parameter.DefaultParticleSizeVariation,
		ParticleDistribution:         parameter.DistributionUniform,
		ParticleSpread:               parameter.DefaultParticleSpread,
		ParticleGaussianSigma:        parameter.DefaultParticleGaussianSigma,
		ParticleOpacity:              parameter.DefaultParticleOpacity,
		ParticleSeed:                 parameter.DefaultParticleSeed,
		MaxParticlesPerChord:         parameter.DefaultMaxParticlesPerChord,
		MaxTotalParticles:            parameter.DefaultMaxTotalParticles,
		ProgressiveGenerationEnabled: true,
		GenerationBatchSize:          parameter.DefaultBatchSize,
		BatchesPerTick:               parameter.DefaultBatchesPerTick,
		ParticlesOnlyRealConnections: false,
		RealConnectionThreshold:      0,

		UseAcceleratedRenderer: false,
		AcceleratedQuality:     parameter.QualityMedium,

		AnimationEnabled: true,
		FlowSpeed:        parameter.DefaultFlowSpeed,
		PulseAmplitude:   parameter.DefaultPulseAmplitude,
		PulseFrequency:   parameter.DefaultPulseFrequency,
		Turbulence:       parameter.DefaultTurbulence,
		FadeInStiffness:  parameter.DefaultFadeInFrequency,

		ShowArcs:   true,
		ShowChords: false,
		ShowLabels: false,

		ArcPadding: parameter.DefaultArcPadding,
	}
}

// Backend returns the render backend requested by the configuration
func (c Configuration) Backend() parameter.Backend {
	if c.UseAcceleratedRenderer {
		return parameter.BackendAccelerated
	}
	return parameter.BackendVector
}
