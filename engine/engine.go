// Package engine wires configuration, layout, generation, animation, rendering and metrics
// into the frame loop a host drives through Tick
package engine

import (
	"fmt"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/lixenwraith/chordflow/chord"
	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/core"
	"github.com/lixenwraith/chordflow/generation"
	"github.com/lixenwraith/chordflow/geometry"
	"github.com/lixenwraith/chordflow/metrics"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/parameter/visual"
	"github.com/lixenwraith/chordflow/particle"
	"github.com/lixenwraith/chordflow/render"
	"github.com/lixenwraith/chordflow/status"
)

// Options configure an Engine; Canvas is required
type Options struct {
	Canvas render.Canvas
	// Device backs the accelerated strategy; nil makes accelerated requests fall back
	Device   render.Device
	Clock    core.Clock
	Logger   *slog.Logger
	Registry *status.Registry

	// OnProgress receives generation progress after every batch
	OnProgress func(generation.Progress)
}

// Engine owns the configuration, the current layout and every runtime component
// All methods are safe to call from the host goroutine; Cancel may be called from any goroutine
type Engine struct {
	mu sync.Mutex

	cfg     config.Configuration
	dataset chord.Dataset
	layout  chord.Layout
	loaded  bool

	scheduler *generation.Scheduler
	animator  *particle.Animator
	selector  *render.Selector
	orch      *render.Orchestrator
	metrics   *metrics.Engine

	arcs      *render.ArcLayer
	chords    *render.ChordLayer
	labels    *render.LabelLayer
	particles *render.ParticleLayer

	base     core.Clock
	anim     *core.PausableClock
	lastTick time.Time
	frame    []particle.Particle

	recommending bool
	advisories   []render.Advisory

	logger     *slog.Logger
	onProgress func(generation.Progress)
}

// New creates an engine with no dataset
func New(cfg config.Configuration, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	base := core.OrDefault(opts.Clock)
	eff := cfg.Sanitize()

	e := &Engine{
		cfg:        cfg,
		metrics:    metrics.NewEngine(opts.Registry, base),
		animator:   particle.NewAnimator(animationParams(eff), int64(eff.ParticleSeed)),
		selector:   render.NewSelector(opts.Canvas, opts.Device, logger),
		orch:       render.NewOrchestrator(opts.Canvas),
		arcs:       &render.ArcLayer{},
		chords:     &render.ChordLayer{},
		labels:     &render.LabelLayer{},
		base:       base,
		anim:       core.NewPausableClock(base),
		logger:     logger.With("component", "engine"),
		onProgress: opts.OnProgress,
	}
	e.scheduler = generation.NewScheduler(generation.Options{
		Clock:      base,
		Logger:     logger,
		OnProgress: e.progress,
	})
	e.particles = &render.ParticleLayer{
		Selector: e.selector,
		Source:   func() []particle.Particle { return e.frame },
		Show:     func(c config.Configuration) bool { return e.scheduler.LayerVisible(c.ParticleMode) },
	}

	e.orch.Register(render.NewBackgroundLayer(), render.PriorityBackground)
	e.orch.Register(e.chords, render.PriorityChords)
	e.orch.Register(e.arcs, render.PriorityArcs)
	e.orch.Register(e.particles, render.PriorityParticles)
	e.orch.Register(e.labels, render.PriorityOverlay)

	e.selector.Select(eff)
	e.metrics.SetBackend(e.selector.Backend())
	e.collectLocked()
	return e
}

// progress runs outside scheduler locks and may run while e.mu is held by Tick
func (e *Engine) progress(p generation.Progress) {
	e.metrics.RecordGeneration(p.ParticlesSoFar, p.ChordsProcessed, p.ChordsTotal)
	if e.onProgress != nil {
		e.onProgress(p)
	}
}

// Config returns the current configuration as applied, before sanitizing
func (e *Engine) Config() config.Configuration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Layout returns the current diagram layout
func (e *Engine) Layout() chord.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout
}

// SetDataset lays out ds and starts generation when particle mode is on
func (e *Engine) SetDataset(ds chord.Dataset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dataset = ds
	e.loaded = true
	e.rebuildLocked()
	e.logger.Info("dataset set", "nodes", len(ds.Nodes), "links", len(ds.Links), "chords", len(e.layout.Chords))
}

// ApplyUpdates merges partial updates and reacts to what changed
// Structural changes regenerate particles; backend changes reselect the strategy; everything
// else is read by the next frame
func (e *Engine) ApplyUpdates(updates ...config.Update) config.Configuration {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.cfg
	next := config.Apply(prev, updates...)
	if next.Version == prev.Version {
		return next
	}
	e.cfg = next

	eff := next.Sanitize()
	change := config.Diff(prev.Sanitize(), eff)
	e.logger.Debug("configuration applied", "version", next.Version, "change", change.String())

	if change.Has(config.ChangeAnimation) {
		e.animator.SetParams(animationParams(eff))
	}
	if change.Has(config.ChangeStructure) && e.loaded {
		e.rebuildLocked()
	}
	if change.Has(config.ChangeBackend) {
		e.selector.Select(eff)
		e.metrics.SetBackend(e.selector.Backend())
	}
	e.collectLocked()
	return next
}

// Regenerate restarts generation over the current chords
func (e *Engine) Regenerate() *generation.Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return nil
	}
	return e.startLocked(e.cfg.Sanitize())
}

// Cancel stops the running generation job, keeping what it produced
func (e *Engine) Cancel() {
	e.scheduler.CancelCurrent()
}

// Progress returns the active job's progress
func (e *Engine) Progress() generation.Progress {
	return e.scheduler.Progress()
}

// Snapshot returns the latest render metrics
func (e *Engine) Snapshot() metrics.RenderMetricsSnapshot {
	return e.metrics.Snapshot()
}

// Metrics exposes the metrics engine for registry listing
func (e *Engine) Metrics() *metrics.Engine {
	return e.metrics
}

// Backend returns the strategy currently drawing particles
func (e *Engine) Backend() parameter.Backend {
	return e.selector.Backend()
}

// TogglePause freezes or resumes particle animation and returns whether it is now paused
func (e *Engine) TogglePause() bool {
	return e.anim.Toggle()
}

// Advisories drains queued advisories for the host
func (e *Engine) Advisories() []render.Advisory {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.collectLocked()
	out := e.advisories
	e.advisories = nil
	return out
}

// Resize informs the backends of a new viewport ahead of the next frame
func (e *Engine) Resize(vp render.Viewport) {
	e.selector.Resize(vp)
}

// Tick advances generation by BatchesPerTick batches, animates and draws one frame
// Returning from Tick is the cooperative yield between batches
func (e *Engine) Tick(vp render.Viewport) (render.FrameStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.cfg.Sanitize()
	if cfg.ParticleMode {
		for i := 0; i < cfg.BatchesPerTick; i++ {
			if !e.scheduler.Step() {
				break
			}
		}
	}

	now := e.anim.Now()
	var elapsed time.Duration
	if !e.lastTick.IsZero() {
		elapsed = now.Sub(e.lastTick)
	}
	e.lastTick = now

	var set []particle.Particle
	chordsWith := 0
	if cfg.ParticleMode {
		set = e.scheduler.Particles()
		chordsWith = len(e.scheduler.Spans())
	}
	e.frame = e.animator.Frame(e.frame[:0], set, e.scheduler.Paths(), elapsed)
	e.metrics.RecordParticles(len(set), chordsWith)

	if vp.Empty() {
		return render.FrameStats{}, nil
	}

	e.particles.ResetStats()
	start := e.base.Now()
	err := e.orch.RenderFrame(vp, cfg)
	frameMs := float64(e.base.Now().Sub(start)) / float64(time.Millisecond)

	stats := e.particles.LastStats()
	e.metrics.SetBackend(e.selector.Backend())
	e.metrics.RecordFrame(frameMs)
	e.collectLocked()

	if err != nil {
		return stats, fmt.Errorf("render frame: %w", err)
	}
	return stats, nil
}

// collectLocked moves selector advisories into the queue and raises the recommendation once per crossing
func (e *Engine) collectLocked() {
	e.advisories = append(e.advisories, e.selector.Advisories()...)

	rec := e.metrics.Recommend()
	if rec && !e.recommending {
		snap := e.metrics.Snapshot()
		e.advisories = append(e.advisories, render.Advisory{
			Kind:    render.AdvisoryRecommendAcceleration,
			Message: fmt.Sprintf("%d particles on the vector backend, accelerated rendering recommended", snap.TotalParticles),
		})
		e.logger.Info("acceleration recommended", "particles", snap.TotalParticles)
	}
	e.recommending = rec
}

// rebuildLocked recomputes layout and layer shapes, then restarts or stops generation
func (e *Engine) rebuildLocked() {
	cfg := e.cfg.Sanitize()
	e.layout = chord.Build(e.dataset, layoutOptions(cfg))

	palette := visual.CategoryPalette(len(e.layout.Categories))
	index := e.layout.CategoryIndex()
	colorOf := func(cat string) color.RGBA {
		if i, ok := index[cat]; ok {
			return palette[i]
		}
		return visual.ArcStroke
	}

	arcs := make([]render.ArcShape, 0, len(e.layout.Nodes))
	labels := make([]render.Label, 0, len(e.layout.Nodes))
	for _, n := range e.layout.Nodes {
		arc := e.layout.NodeArcs[n.ID]
		arcs = append(arcs, render.ArcShape{Arc: arc, Color: colorOf(n.Category)})
		labels = append(labels, render.Label{Arc: arc, Text: n.ID})
	}
	shapes := make([]render.ChordShape, 0, len(e.layout.Chords))
	for _, c := range e.layout.Chords {
		if c.Degenerate() {
			continue
		}
		shapes = append(shapes, render.ChordShape{
			Path:      geometry.BuildPath(c.SourceArc, c.TargetArc, cfg.Curvature),
			Color:     colorOf(c.Category),
			HalfWidth: c.RibbonHalfWidth(),
		})
	}
	e.arcs.Arcs = arcs
	e.labels.Labels = labels
	e.chords.Chords = shapes

	if cfg.ParticleMode {
		e.startLocked(cfg)
		return
	}
	e.scheduler.CancelCurrent()
}

func (e *Engine) startLocked(cfg config.Configuration) *generation.Job {
	e.animator.Reset()
	e.frame = e.frame[:0]
	return e.scheduler.Initialize(e.layout.Chords, cfg)
}

func animationParams(cfg config.Configuration) particle.AnimationParams {
	return particle.AnimationParams{
		Enabled:         cfg.AnimationEnabled,
		FlowSpeed:       cfg.FlowSpeed,
		PulseAmplitude:  cfg.PulseAmplitude,
		PulseFrequency:  cfg.PulseFrequency,
		Turbulence:      cfg.Turbulence,
		FadeInFrequency: cfg.FadeInStiffness,
	}
}

func layoutOptions(cfg config.Configuration) chord.LayoutOptions {
	opts := chord.DefaultLayoutOptions()
	opts.Padding = cfg.ArcPadding
	opts.RealThreshold = cfg.RealConnectionThreshold
	return opts
}
