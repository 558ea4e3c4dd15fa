package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. CHORDFLOW_PARTICLE_DENSITY
const EnvPrefix = "CHORDFLOW"

// ErrUnsupportedFormat marks an overlay file extension with no decoder
var ErrUnsupportedFormat = errors.New("unsupported config format")

// SetDefaults registers every configuration key with its built-in value
// Registration also makes each key visible to AutomaticEnv during Unmarshal
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("chord_opacity", d.ChordOpacity)
	v.SetDefault("chord_width", d.ChordWidth)
	v.SetDefault("arc_width", d.ArcWidth)
	v.SetDefault("curvature", d.Curvature)
	v.SetDefault("shape_mode", string(d.ShapeMode))

	v.SetDefault("particle_mode", d.ParticleMode)
	v.SetDefault("particle_density", d.ParticleDensity)
	v.SetDefault("particle_size", d.ParticleSize)
	v.SetDefault("particle_size_variation", d.ParticleSizeVariation)
	v.SetDefault("particle_distribution", string(d.ParticleDistribution))
	v.SetDefault("particle_spread", d.ParticleSpread)
	v.SetDefault("particle_gaussian_sigma", d.ParticleGaussianSigma)
	v.SetDefault("particle_opacity", d.ParticleOpacity)
	v.SetDefault("particle_seed", d.ParticleSeed)
	v.SetDefault("max_particles_per_chord", d.MaxParticlesPerChord)
	v.SetDefault("max_total_particles", d.MaxTotalParticles)
	v.SetDefault("progressive_generation_enabled", d.ProgressiveGenerationEnabled)
	v.SetDefault("generation_batch_size", d.GenerationBatchSize)
	v.SetDefault("batches_per_tick", d.BatchesPerTick)
	v.SetDefault("particles_only_real_connections", d.ParticlesOnlyRealConnections)
	v.SetDefault("real_connection_threshold", d.RealConnectionThreshold)

	v.SetDefault("use_accelerated_renderer", d.UseAcceleratedRenderer)
	v.SetDefault("accelerated_quality", string(d.AcceleratedQuality))

	v.SetDefault("animation_enabled", d.AnimationEnabled)
	v.SetDefault("flow_speed", d.FlowSpeed)
	v.SetDefault("pulse_amplitude", d.PulseAmplitude)
	v.SetDefault("pulse_frequency", d.PulseFrequency)
	v.SetDefault("turbulence", d.Turbulence)
	v.SetDefault("fade_in_stiffness", d.FadeInStiffness)

	v.SetDefault("show_arcs", d.ShowArcs)
	v.SetDefault("show_chords", d.ShowChords)
	v.SetDefault("show_labels", d.ShowLabels)

	v.SetDefault("arc_padding", d.ArcPadding)
}

// NewViper returns a viper instance with defaults and CHORDFLOW_* env binding
// A non-empty path is read as the config file; a missing default file is not an error
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return v, nil
}

// Load unmarshals v into a sanitized Configuration
func Load(v *viper.Viper) (Configuration, error) {
	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return Configuration{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg.Sanitize(), nil
}

// DecodeUpdate reads a partial configuration overlay from a file
func DecodeUpdate(path string) (Update, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Update{}, fmt.Errorf("reading overlay: %w", err)
	}
	return DecodeUpdateBytes(data, filepath.Ext(path))
}

// DecodeUpdateBytes parses an overlay in the format named by ext
// Unknown keys are rejected so typos surface instead of silently doing nothing
func DecodeUpdateBytes(data []byte, ext string) (Update, error) {
	var u Update
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&u); err != nil {
			return Update{}, fmt.Errorf("parsing toml overlay: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&u); err != nil && !errors.Is(err, io.EOF) {
			return Update{}, fmt.Errorf("parsing yaml overlay: %w", err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&u); err != nil && !errors.Is(err, io.EOF) {
			return Update{}, fmt.Errorf("parsing json overlay: %w", err)
		}
	default:
		return Update{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return u, nil
}
