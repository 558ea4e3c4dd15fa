// Package metrics observes render timing and generation progress and derives the
// advisory "switch to accelerated" recommendation. It never mutates configuration.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/chordflow/core"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/status"
)

// Registry keys
const (
	KeyFPS                 = "render.fps"
	KeyPeakFPS             = "render.fps_peak"
	KeyTroughFPS           = "render.fps_trough"
	KeyRenderTimeMs        = "render.time_ms"
	KeyFrames              = "render.frames"
	KeyBackend             = "render.backend"
	KeyTotalParticles      = "particles.total"
	KeyChordsWithParticles = "particles.chords"
	KeyParticlesSoFar      = "generation.particles"
	KeyChordsProcessed     = "generation.chords_processed"
	KeyChordsTotal         = "generation.chords_total"
	KeyRecommend           = "render.recommend_accelerated"
)

// RenderMetricsSnapshot is the rolling measurement record shown in the metrics panel
type RenderMetricsSnapshot struct {
	TotalParticles      int
	ChordsWithParticles int
	RenderTimeMs        float64
	FPS                 float64
	PeakFPS             float64
	TroughFPS           float64
	Backend             parameter.Backend
	Frames              int64

	ParticlesSoFar  int
	ChordsProcessed int
	ChordsTotal     int

	RecommendAcceleration bool
}

// ShouldRecommendAcceleration reports whether the particle count is high for the vector backend
func ShouldRecommendAcceleration(backend parameter.Backend, totalParticles int) bool {
	return backend == parameter.BackendVector && totalParticles > parameter.AccelerationThreshold
}

// Engine accumulates frame and generation measurements
// Values are mirrored into a status.Registry for generic listing
type Engine struct {
	mu    sync.Mutex
	clock core.Clock

	lastFrame time.Time
	hasFrame  bool
	fps       float64
	window    []float64
	next      int

	backend   parameter.Backend
	total     int
	chords    int
	renderMs  float64
	frames    int64
	soFar     int
	processed int
	chordsAll int

	// Cached metric pointers
	reg           *status.Registry
	statFPS       *status.AtomicFloat
	statPeak      *status.AtomicFloat
	statTrough    *status.AtomicFloat
	statRenderMs  *status.AtomicFloat
	statFrames    *atomic.Int64
	statBackend   *status.AtomicString
	statTotal     *atomic.Int64
	statChords    *atomic.Int64
	statSoFar     *atomic.Int64
	statProc      *atomic.Int64
	statChordAll  *atomic.Int64
	statRecommend *atomic.Bool
}

// NewEngine creates an engine publishing into reg; nil reg gets a private registry, nil clock the real one
func NewEngine(reg *status.Registry, clock core.Clock) *Engine {
	if reg == nil {
		reg = status.NewRegistry()
	}
	e := &Engine{
		clock:         core.OrDefault(clock),
		window:        make([]float64, 0, parameter.FPSWindow),
		backend:       parameter.BackendVector,
		reg:           reg,
		statFPS:       reg.Floats.Get(KeyFPS),
		statPeak:      reg.Floats.Get(KeyPeakFPS),
		statTrough:    reg.Floats.Get(KeyTroughFPS),
		statRenderMs:  reg.Floats.Get(KeyRenderTimeMs),
		statFrames:    reg.Ints.Get(KeyFrames),
		statBackend:   reg.Strings.Get(KeyBackend),
		statTotal:     reg.Ints.Get(KeyTotalParticles),
		statChords:    reg.Ints.Get(KeyChordsWithParticles),
		statSoFar:     reg.Ints.Get(KeyParticlesSoFar),
		statProc:      reg.Ints.Get(KeyChordsProcessed),
		statChordAll:  reg.Ints.Get(KeyChordsTotal),
		statRecommend: reg.Bools.Get(KeyRecommend),
	}
	e.statBackend.Store(string(e.backend))
	return e
}

// Registry returns the registry metrics are published to
func (e *Engine) Registry() *status.Registry {
	return e.reg
}

// RecordFrame folds one frame into the smoothed fps and rolling window
// The instantaneous rate comes from the clock interval between frames; the first frame
// (or a zero interval) falls back to 1000/renderTimeMs
func (e *Engine) RecordFrame(renderTimeMs float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	var inst float64
	if e.hasFrame {
		if dt := now.Sub(e.lastFrame); dt > 0 {
			inst = float64(time.Second) / float64(dt)
		}
	}
	if inst == 0 && renderTimeMs > 0 {
		inst = 1000 / renderTimeMs
	}
	e.lastFrame = now
	e.hasFrame = true

	e.frames++
	e.renderMs = max(renderTimeMs, 0)

	if inst > 0 {
		if e.fps == 0 {
			e.fps = inst
		} else {
			e.fps += parameter.FPSSmoothing * (inst - e.fps)
		}
		e.push(e.fps)
	}

	peak, trough := e.extremes()
	e.statFPS.Set(e.fps)
	e.statPeak.Set(peak)
	e.statTrough.Set(trough)
	e.statRenderMs.Set(e.renderMs)
	e.statFrames.Store(e.frames)
}

// push appends to the ring buffer, overwriting the oldest once full
func (e *Engine) push(v float64) {
	if len(e.window) < cap(e.window) {
		e.window = append(e.window, v)
		return
	}
	e.window[e.next] = v
	e.next = (e.next + 1) % len(e.window)
}

func (e *Engine) extremes() (float64, float64) {
	if len(e.window) == 0 {
		return 0, 0
	}
	peak, trough := e.window[0], e.window[0]
	for _, v := range e.window[1:] {
		peak = max(peak, v)
		trough = min(trough, v)
	}
	return peak, trough
}

// RecordGeneration updates progress counters
func (e *Engine) RecordGeneration(particlesSoFar, chordsProcessed, chordsTotal int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.soFar, e.processed, e.chordsAll = particlesSoFar, chordsProcessed, chordsTotal
	e.statSoFar.Store(int64(particlesSoFar))
	e.statProc.Store(int64(chordsProcessed))
	e.statChordAll.Store(int64(chordsTotal))
}

// RecordParticles updates the size of the rendered set
func (e *Engine) RecordParticles(total, chordsWithParticles int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.total, e.chords = total, chordsWithParticles
	e.statTotal.Store(int64(total))
	e.statChords.Store(int64(chordsWithParticles))
	e.statRecommend.Store(ShouldRecommendAcceleration(e.backend, e.total))
}

// SetBackend records the strategy currently in use
func (e *Engine) SetBackend(b parameter.Backend) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.backend = b
	e.statBackend.Store(string(b))
	e.statRecommend.Store(ShouldRecommendAcceleration(e.backend, e.total))
}

// Recommend evaluates the recommendation for the last recorded backend and particle count
func (e *Engine) Recommend() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ShouldRecommendAcceleration(e.backend, e.total)
}

// Snapshot returns a copy of the current measurements
func (e *Engine) Snapshot() RenderMetricsSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	peak, trough := e.extremes()
	return RenderMetricsSnapshot{
		TotalParticles:        e.total,
		ChordsWithParticles:   e.chords,
		RenderTimeMs:          e.renderMs,
		FPS:                   e.fps,
		PeakFPS:               peak,
		TroughFPS:             trough,
		Backend:               e.backend,
		Frames:                e.frames,
		ParticlesSoFar:        e.soFar,
		ChordsProcessed:       e.processed,
		ChordsTotal:           e.chordsAll,
		RecommendAcceleration: ShouldRecommendAcceleration(e.backend, e.total),
	}
}

// Reset clears frame history, keeping backend and counters
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hasFrame = false
	e.fps = 0
	e.window = e.window[:0]
	e.next = 0
}
