package particle

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/chordflow/geometry"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/vmath"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func testPath() geometry.Path {
	src := geometry.Arc{StartAngle: 0, EndAngle: 0.5, Radius: 1}
	dst := geometry.Arc{StartAngle: 2, EndAngle: 2.6, Radius: 1}
	return geometry.BuildPath(src, dst, 1)
}

func testSampler() Sampler {
	return Sampler{
		ChordID:       "a->b#0",
		Spread:        0.05,
		GaussianSigma: 0.35,
		Opacity:       0.8,
		SourceColor:   red,
		TargetColor:   blue,
	}
}

func TestSampleDeterministic(t *testing.T) {
	s := testSampler()
	size := SizeParams{Base: 0.01, Variation: 0.3}
	for _, dist := range parameter.Distributions {
		t.Run(string(dist), func(t *testing.T) {
			a := s.Sample(testPath(), 64, dist, size, 42)
			b := s.Sample(testPath(), 64, dist, size, 42)
			if diff := cmp.Diff(a, b); diff != "" {
				t.Errorf("Same seed produced different particles (-first +second):\n%s", diff)
			}
			c := s.Sample(testPath(), 64, dist, size, 43)
			if cmp.Equal(a, c) {
				t.Error("Different seeds should produce different particles")
			}
		})
	}
}

func TestSampleCount(t *testing.T) {
	s := testSampler()
	tests := []struct {
		count int
		want  int
	}{
		{-3, 0},
		{0, 0},
		{1, 1},
		{7, 7},
		{500, 500},
	}
	for _, tt := range tests {
		for _, dist := range parameter.Distributions {
			got := s.Sample(testPath(), tt.count, dist, SizeParams{Base: 0.01}, 1)
			if got == nil {
				t.Fatalf("count %d %s: expected empty slice, got nil", tt.count, dist)
			}
			if len(got) != tt.want {
				t.Errorf("count %d %s: expected %d particles, got %d", tt.count, dist, tt.want, len(got))
			}
		}
	}
}

func TestSampleRadiusBounds(t *testing.T) {
	s := testSampler()
	sizes := []SizeParams{
		{Base: 0.01, Variation: 0},
		{Base: 0.01, Variation: 0.5},
		{Base: 0.02, Variation: 0.95},
		{Base: 1, Variation: 0.3},
	}
	for _, size := range sizes {
		for _, dist := range parameter.Distributions {
			for _, p := range s.Sample(testPath(), 300, dist, size, 9) {
				if !(p.Radius > 0) {
					t.Fatalf("%v %s: non-positive radius %f", size, dist, p.Radius)
				}
				if p.Radius > size.Base*(1+size.Variation)+1e-12 {
					t.Fatalf("%v %s: radius %f above bound", size, dist, p.Radius)
				}
			}
		}
	}
}

func TestSampleClampsInvalidSize(t *testing.T) {
	s := testSampler()
	for _, size := range []SizeParams{{Base: -1}, {Base: 0}, {Base: math.NaN(), Variation: 5}} {
		for _, p := range s.Sample(testPath(), 20, parameter.DistributionRandom, size, 3) {
			if p.Radius < parameter.MinParticleRadius {
				t.Errorf("%v: radius %f below minimum", size, p.Radius)
			}
		}
	}
}

func TestSampleUniformExact(t *testing.T) {
	line := geometry.Line{From: vmath.V(0, 0), To: vmath.V(1, 0)}
	got := Sampler{Opacity: 1}.Sample(line, 5, parameter.DistributionUniform, SizeParams{Base: 1, Variation: 0}, 123)

	want := []float64{0, 0.25, 0.5, 0.75, 1.0}
	for i, p := range got {
		if p.T != want[i] {
			t.Errorf("Particle %d: expected t=%v exactly, got %v", i, want[i], p.T)
		}
		if p.Radius != 1 {
			t.Errorf("Particle %d: expected radius 1 with zero variation, got %v", i, p.Radius)
		}
		// Zero spread keeps particles on the path
		if p.LateralOffset != 0 || math.Abs(p.X-want[i]) > 1e-12 || p.Y != 0 {
			t.Errorf("Particle %d: expected on-path at (%v,0), got (%v,%v) offset %v", i, want[i], p.X, p.Y, p.LateralOffset)
		}
	}

	single := Sampler{}.Sample(line, 1, parameter.DistributionUniform, SizeParams{Base: 1}, 1)
	if single[0].T != 0.5 {
		t.Errorf("Single uniform particle should sit at t=0.5, got %v", single[0].T)
	}
}

func TestSampleLateralWithinSpread(t *testing.T) {
	s := testSampler()
	for _, dist := range parameter.Distributions {
		for _, p := range s.Sample(testPath(), 500, dist, SizeParams{Base: 0.01}, 77) {
			if math.Abs(p.LateralOffset) > s.Spread {
				t.Fatalf("%s: offset %f outside spread %f", dist, p.LateralOffset, s.Spread)
			}
			if p.T < 0 || p.T > 1 {
				t.Fatalf("%s: t %f outside [0,1]", dist, p.T)
			}
			if p.Phase < 0 || p.Phase >= vmath.TwoPi {
				t.Fatalf("%s: phase %f outside [0,2pi)", dist, p.Phase)
			}
			if p.Opacity < parameter.MinParticleOpacity || p.Opacity > 1 {
				t.Fatalf("%s: opacity %f out of range", dist, p.Opacity)
			}
		}
	}
}

func TestGaussianClustersTowardCenter(t *testing.T) {
	s := testSampler()
	meanAbs := func(ps []Particle) float64 {
		var sum float64
		for _, p := range ps {
			sum += math.Abs(p.LateralOffset)
		}
		return sum / float64(len(ps))
	}
	gauss := meanAbs(s.Sample(testPath(), 2000, parameter.DistributionGaussian, SizeParams{Base: 0.01}, 5))
	random := meanAbs(s.Sample(testPath(), 2000, parameter.DistributionRandom, SizeParams{Base: 0.01}, 5))
	if gauss >= random*0.6 {
		t.Errorf("Gaussian mean |offset| %f should be well below random %f", gauss, random)
	}
}

func TestSampleColorFollowsDirection(t *testing.T) {
	line := geometry.Line{From: vmath.V(0, 0), To: vmath.V(1, 0)}
	ps := testSampler().Sample(line, 3, parameter.DistributionUniform, SizeParams{Base: 0.01}, 1)
	if ps[0].Color != red {
		t.Errorf("t=0 should take the source color, got %v", ps[0].Color)
	}
	if ps[2].Color != blue {
		t.Errorf("t=1 should take the target color, got %v", ps[2].Color)
	}
}

func TestCountFor(t *testing.T) {
	tests := []struct {
		name                    string
		strength, maxS, density float64
		max                     int
		want                    int
	}{
		{"strongest at density 1", 10, 10, 1, 1000, 60},
		{"half strength", 5, 10, 1, 1000, 30},
		{"double density", 5, 10, 2, 1000, 60},
		{"capped", 10, 10, 5, 100, 100},
		{"floor of one", 0.01, 10, 0.1, 100, 1},
		{"zero density", 10, 10, 0, 100, 0},
		{"negative density", 10, 10, -1, 100, 0},
		{"zero strength", 0, 10, 1, 100, 0},
		{"zero max count", 10, 10, 1, 0, 0},
		{"missing max strength", 3, 0, 1, 1000, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountFor(tt.strength, tt.maxS, tt.density, tt.max); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSeedForStable(t *testing.T) {
	if SeedFor("a->b#0", 1) != SeedFor("a->b#0", 1) {
		t.Error("SeedFor must be stable")
	}
	if SeedFor("a->b#0", 1) == SeedFor("a->b#1", 1) {
		t.Error("Distinct chords should get distinct seeds")
	}
	if SeedFor("a->b#0", 1) == SeedFor("a->b#0", 2) {
		t.Error("Base seed should change the result")
	}
}
