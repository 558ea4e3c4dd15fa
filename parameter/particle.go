package parameter

// Particle Sampling
const (
	// MinParticleRadius is the smallest radius a sampled particle may have (layout units)
	MinParticleRadius = 0.0005

	// MaxSizeVariation caps the size variation fraction so radius stays above zero before clamping
	MaxSizeVariation = 0.95

	// MinParticleOpacity keeps edge particles faintly visible
	MinParticleOpacity = 0.05

	// EdgeFade is the opacity reduction at the ribbon edge relative to the centerline
	EdgeFade = 0.4

	// ParticlesPerStrength is the particle count of the strongest chord at density 1.0
	ParticlesPerStrength = 60.0

	// MaxParticleDensity bounds the density slider
	MaxParticleDensity = 10.0

	// MaxGaussianSigma bounds the gaussian spread as a fraction of ribbon half-width
	MaxGaussianSigma = 2.0
)

// Particle Defaults
const (
	DefaultParticleDensity       = 1.0
	DefaultParticleSize          = 0.006
	DefaultParticleSizeVariation = 0.3
	DefaultParticleSpread        = 1.0
	DefaultParticleGaussianSigma = 0.35
	DefaultParticleOpacity       = 0.8
	DefaultMaxParticlesPerChord  = 200
	DefaultMaxTotalParticles     = 200_000
	DefaultParticleSeed          = 0x5eed
)

// Particle Limits
const (
	// MaxParticlesPerChordLimit is the hard upper bound accepted for the per-chord setting
	MaxParticlesPerChordLimit = 5000

	// MaxTotalParticlesLimit bounds the whole particle set
	MaxTotalParticlesLimit = 2_000_000
)

// Animation
const (
	DefaultFlowSpeed      = 0.05 // path fraction per second
	DefaultPulseAmplitude = 0.25
	DefaultPulseFrequency = 1.5 // radians per second
	DefaultTurbulence     = 0.0

	// FadeInFrequency and FadeInDamping drive the harmonica spring used when particles first appear
	DefaultFadeInFrequency = 4.0
	FadeInDamping          = 1.0

	// FadeInSettled is the spring position treated as fully visible
	FadeInSettled = 0.995

	// TurbulenceScale converts noise samples to lateral displacement relative to spread
	TurbulenceScale = 0.5
)

// Configuration Limits
const (
	MaxParticleSpread  = 2.0
	MaxFlowSpeed       = 5.0
	MaxPulseFrequency  = 50.0
	MaxTurbulence      = 0.2
	MaxFadeInFrequency = 60.0
)
