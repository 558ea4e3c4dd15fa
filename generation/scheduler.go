package generation

import (
	"context"
	"image/color"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/time/rate"

	"github.com/lixenwraith/chordflow/chord"
	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/core"
	"github.com/lixenwraith/chordflow/geometry"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/parameter/visual"
	"github.com/lixenwraith/chordflow/particle"
)

// Span is the index range [Start, End) of one chord's particles in the aggregated set
type Span struct {
	ChordID string
	Start   int
	End     int
}

// Len returns the particle count of the span
func (s Span) Len() int { return s.End - s.Start }

// Options configure a Scheduler; zero values select defaults
type Options struct {
	Clock  core.Clock
	Logger *slog.Logger

	// OnProgress is invoked after every batch and state change, outside scheduler locks
	OnProgress func(Progress)
}

// Scheduler owns the active job and the particle set it accumulates
// Batches are serialized; Cancel may be called from any goroutine
type Scheduler struct {
	// stepMu serializes batch execution and job replacement
	stepMu sync.Mutex

	mu         sync.Mutex
	job        *Job
	chords     []chord.Chord
	cfg        config.Configuration
	maxStrgth  float64
	palette    map[string]color.RGBA
	particles  []particle.Particle
	spans      []Span
	paths      map[string]geometry.Path
	pathsView  map[string]geometry.Path
	suppressed int

	clock      core.Clock
	logger     *slog.Logger
	warn       *rate.Limiter
	onProgress func(Progress)
}

// NewScheduler creates an idle scheduler
func NewScheduler(opts Options) *Scheduler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		clock:      core.OrDefault(opts.Clock),
		logger:     logger.With("component", "generation"),
		warn:       rate.NewLimiter(rate.Every(parameter.WarnLogInterval), parameter.WarnLogBurst),
		onProgress: opts.OnProgress,
		paths:      make(map[string]geometry.Path),
	}
}

// Initialize cancels any running job, discards the previous particle set and starts a new job
// Non-progressive generation of a small chord set completes before returning
func (s *Scheduler) Initialize(chords []chord.Chord, cfg config.Configuration) *Job {
	s.stepMu.Lock()

	s.mu.Lock()
	prev := s.job
	now := s.clock.Now()
	var prevProgress *Progress
	if prev != nil && prev.cancel(now) {
		p := prev.Progress()
		prevProgress = &p
		s.logger.Debug("job superseded", "job", prev.ID(), "processed", p.ChordsProcessed)
	}

	cfg = cfg.Sanitize()
	s.cfg = cfg
	s.chords = append([]chord.Chord(nil), chords...)
	s.maxStrgth = maxStrength(s.chords)
	s.palette = categoryPalette(s.chords)
	s.particles = nil
	s.spans = nil
	s.paths = make(map[string]geometry.Path, len(chords))
	s.pathsView = nil
	s.suppressed = 0

	job := newJob(len(chords), now)
	if len(chords) == 0 {
		job.status = StatusComplete
		job.finishedAt = now
	}
	s.job = job
	inline := !cfg.ProgressiveGenerationEnabled && len(chords) < parameter.SyncChordThreshold
	s.mu.Unlock()

	s.logger.Info("generation started", "job", job.ID(), "chords", len(chords), "inline", inline,
		"distribution", cfg.ParticleDistribution, "density", cfg.ParticleDensity)

	if prevProgress != nil {
		s.notify(*prevProgress)
	}
	s.notify(job.Progress())

	if inline {
		for s.stepLocked(job) {
		}
	}
	s.stepMu.Unlock()
	return job
}

// Step processes one batch of the current job and reports whether work remains
func (s *Scheduler) Step() bool {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	return s.stepLocked(nil)
}

// Run drives job to a terminal state, yielding between batches
// Context cancellation cancels the job; a job replaced by Initialize stops being driven
func (s *Scheduler) Run(ctx context.Context, job *Job) Status {
	if job == nil {
		return StatusIdle
	}
	for {
		if ctx.Err() != nil {
			s.Cancel(job)
			return job.Status()
		}
		s.stepMu.Lock()
		more := s.stepLocked(job)
		s.stepMu.Unlock()
		if !more {
			return job.Status()
		}
		runtime.Gosched()
	}
}

// Cancel stops job after any in-flight batch; already generated particles are kept
// Cancelling a terminal or nil job is a no-op
func (s *Scheduler) Cancel(job *Job) {
	if job == nil {
		return
	}
	if job.cancel(s.clock.Now()) {
		p := job.Progress()
		s.logger.Info("generation cancelled", "job", p.JobID, "processed", p.ChordsProcessed, "total", p.ChordsTotal)
		s.notify(p)
	}
}

// CancelCurrent cancels the active job, if any
func (s *Scheduler) CancelCurrent() {
	s.Cancel(s.Job())
}

// Job returns the active job, nil before the first Initialize
func (s *Scheduler) Job() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job
}

// Progress returns the active job's progress, or an idle record
func (s *Scheduler) Progress() Progress {
	job := s.Job()
	if job == nil {
		return Progress{Status: StatusIdle}
	}
	return job.Progress()
}

// Particles returns the accumulated particle set; callers must not modify it
func (s *Scheduler) Particles() []particle.Particle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.particles[:len(s.particles):len(s.particles)]
}

// Spans returns per-chord ranges into Particles for chords that produced particles
func (s *Scheduler) Spans() []Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Span(nil), s.spans...)
}

// Paths returns the geometry of every processed chord, keyed by chord ID
func (s *Scheduler) Paths() map[string]geometry.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pathsView == nil {
		s.pathsView = make(map[string]geometry.Path, len(s.paths))
		for k, v := range s.paths {
			s.pathsView[k] = v
		}
	}
	return s.pathsView
}

// LayerVisible projects the particle layer's visibility from the authoritative particle flag
// The layer shows only once generation has finished, whether completed or cancelled
func (s *Scheduler) LayerVisible(particleMode bool) bool {
	if !particleMode {
		return false
	}
	job := s.Job()
	return job != nil && job.Status().Terminal()
}

// stepLocked runs one batch; target nil means the current job. Caller holds stepMu
func (s *Scheduler) stepLocked(target *Job) bool {
	s.mu.Lock()
	job := s.job
	if job == nil || (target != nil && job != target) {
		s.mu.Unlock()
		return false
	}
	prog := job.Progress()
	if prog.Status != StatusRunning {
		s.mu.Unlock()
		return false
	}
	cfg := s.cfg
	from := prog.ChordsProcessed
	to := min(from+cfg.GenerationBatchSize, len(s.chords))
	batch := s.chords[from:to]
	budget := cfg.MaxTotalParticles - len(s.particles)
	base := len(s.particles)
	s.mu.Unlock()

	// Chords and cfg are fixed while stepMu is held, so sampling runs unlocked
	var out []particle.Particle
	var spans []Span
	paths := make(map[string]geometry.Path, len(batch))
	skipped := 0
	for _, c := range batch {
		ps, path, skip := s.sampleChord(c, cfg, budget-len(out))
		if skip {
			skipped++
		}
		if path != nil {
			paths[c.ID] = path
		}
		if len(ps) > 0 {
			spans = append(spans, Span{ChordID: c.ID, Start: base + len(out), End: base + len(out) + len(ps)})
			out = append(out, ps...)
		}
	}

	s.mu.Lock()
	s.particles = append(s.particles, out...)
	s.spans = append(s.spans, spans...)
	for id, p := range paths {
		s.paths[id] = p
	}
	if len(paths) > 0 {
		s.pathsView = nil
	}

	job.mu.Lock()
	job.processed = to
	job.skipped += skipped
	job.particles = len(s.particles)
	if job.status == StatusRunning && to >= job.chordsTotal {
		job.status = StatusComplete
		job.finishedAt = s.clock.Now()
	}
	p := job.progressLocked()
	job.mu.Unlock()
	s.mu.Unlock()

	if p.Status == StatusComplete {
		s.logger.Info("generation complete", "job", p.JobID, "particles", p.ParticlesSoFar,
			"skipped", p.ChordsSkipped, "elapsed", p.FinishedAt.Sub(p.StartedAt))
	}
	s.notify(p)
	return p.Status == StatusRunning
}

// sampleChord applies the skip policy and samples one chord within budget
func (s *Scheduler) sampleChord(c chord.Chord, cfg config.Configuration, budget int) ([]particle.Particle, geometry.Path, bool) {
	if c.Degenerate() {
		s.warnDegenerate(c)
		return nil, nil, true
	}
	path := geometry.BuildPath(c.SourceArc, c.TargetArc, cfg.Curvature)
	if cfg.ParticlesOnlyRealConnections && !c.IsRealConnection {
		s.logger.Debug("chord skipped, not a real connection", "chord", c.ID)
		return nil, path, true
	}
	if !cfg.ParticleMode || budget <= 0 {
		return nil, path, false
	}

	count := particle.CountFor(c.Strength, s.maxStrgth, cfg.ParticleDensity, cfg.MaxParticlesPerChord)
	count = min(count, budget)

	sampler := particle.Sampler{
		ChordID:       c.ID,
		Spread:        cfg.ParticleSpread * c.RibbonHalfWidth(),
		GaussianSigma: cfg.ParticleGaussianSigma,
		Opacity:       cfg.ParticleOpacity,
		SourceColor:   s.palette[c.Category],
		TargetColor:   s.palette[c.TargetCategory],
	}
	size := particle.SizeParams{Base: cfg.ParticleSize, Variation: cfg.ParticleSizeVariation}
	return sampler.Sample(path, count, cfg.ParticleDistribution, size, particle.SeedFor(c.ID, cfg.ParticleSeed)), path, false
}

func (s *Scheduler) warnDegenerate(c chord.Chord) {
	if !s.warn.Allow() {
		s.mu.Lock()
		s.suppressed++
		s.mu.Unlock()
		return
	}
	s.mu.Lock()
	suppressed := s.suppressed
	s.suppressed = 0
	s.mu.Unlock()
	s.logger.Warn("chord skipped, degenerate arcs", "chord", c.ID,
		"source_span", c.SourceArc.Span(), "target_span", c.TargetArc.Span(), "suppressed", suppressed)
}

func (s *Scheduler) notify(p Progress) {
	if s.onProgress != nil {
		s.onProgress(p)
	}
}

func maxStrength(chords []chord.Chord) float64 {
	var m float64
	for _, c := range chords {
		m = max(m, c.Strength)
	}
	return m
}

// categoryPalette assigns palette slots in first-seen order over source then target categories
func categoryPalette(chords []chord.Chord) map[string]color.RGBA {
	var order []string
	seen := make(map[string]bool)
	for _, c := range chords {
		for _, cat := range [2]string{c.Category, c.TargetCategory} {
			if !seen[cat] {
				seen[cat] = true
				order = append(order, cat)
			}
		}
	}
	colors := visual.CategoryPalette(len(order))
	out := make(map[string]color.RGBA, len(order))
	for i, cat := range order {
		out[cat] = colors[i]
	}
	return out
}
