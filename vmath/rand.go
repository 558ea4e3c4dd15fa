package vmath

import "math"

// FastRand is a seeded xorshift64 generator, deterministic across platforms
// Not safe for concurrent use; one instance per sampling pass
type FastRand struct {
	state uint64
}

// NewFastRand seeds the generator; zero seeds are remapped since xorshift cannot leave zero
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	r := &FastRand{state: seed}
	// Discard the first outputs, low-entropy seeds correlate early
	for i := 0; i < 4; i++ {
		r.Next()
	}
	return r
}

// Next returns the next raw 64-bit value
func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// Intn returns a value in [0, n), 0 for n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) with 53 bits of precision
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Norm returns a standard normal sample via Box-Muller
func (r *FastRand) Norm() float64 {
	u1 := r.Float64()
	for u1 <= 0 {
		u1 = r.Float64()
	}
	u2 := r.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(TwoPi*u2)
}
