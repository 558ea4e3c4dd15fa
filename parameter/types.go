package parameter

import "strings"

// Distribution selects how particles are spread along and across a chord
type Distribution string

const (
	DistributionUniform  Distribution = "uniform"
	DistributionRandom   Distribution = "random"
	DistributionGaussian Distribution = "gaussian"
)

// Distributions lists the supported distributions in UI cycle order
var Distributions = []Distribution{DistributionUniform, DistributionRandom, DistributionGaussian}

// Valid reports whether d is a known distribution
func (d Distribution) Valid() bool {
	switch d {
	case DistributionUniform, DistributionRandom, DistributionGaussian:
		return true
	}
	return false
}

// Next returns the distribution following d in cycle order
func (d Distribution) Next() Distribution {
	for i, v := range Distributions {
		if v == d {
			return Distributions[(i+1)%len(Distributions)]
		}
	}
	return DistributionUniform
}

// ParseDistribution is case-insensitive; unknown names map to uniform
func ParseDistribution(s string) Distribution {
	d := Distribution(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return DistributionUniform
	}
	return d
}

// Quality is the accelerated backend tessellation level
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Valid reports whether q is a known quality level
func (q Quality) Valid() bool {
	switch q {
	case QualityLow, QualityMedium, QualityHigh:
		return true
	}
	return false
}

// Next returns the quality level following q, wrapping from high to low
func (q Quality) Next() Quality {
	switch q {
	case QualityLow:
		return QualityMedium
	case QualityMedium:
		return QualityHigh
	default:
		return QualityLow
	}
}

// Segments returns the triangle fan segment count used per particle
func (q Quality) Segments() int {
	switch q {
	case QualityLow:
		return QualitySegmentsLow
	case QualityHigh:
		return QualitySegmentsHigh
	default:
		return QualitySegmentsMedium
	}
}

// Backend identifies a render strategy
type Backend string

const (
	BackendVector      Backend = "vector"
	BackendAccelerated Backend = "accelerated"
)

// ShapeMode selects how chords are drawn underneath particles
type ShapeMode string

const (
	ShapeRibbon    ShapeMode = "ribbon"
	ShapeLine      ShapeMode = "line"
	ShapeGeometric ShapeMode = "geometric"
)

// Valid reports whether m is a known shape mode
func (m ShapeMode) Valid() bool {
	switch m {
	case ShapeRibbon, ShapeLine, ShapeGeometric:
		return true
	}
	return false
}
