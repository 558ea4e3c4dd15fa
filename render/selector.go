package render

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/particle"
)

// AdvisoryKind classifies a non-blocking notice for the host
type AdvisoryKind string

const (
	// AdvisoryBackendFallback: accelerated rendering was requested but vector is in use
	AdvisoryBackendFallback AdvisoryKind = "backend_fallback"
	// AdvisoryRecommendAcceleration: the particle count is high for the vector backend
	AdvisoryRecommendAcceleration AdvisoryKind = "recommend_acceleration"
)

// Advisory is a structured notice surfaced to the host, never an error
type Advisory struct {
	Kind    AdvisoryKind
	Message string
}

// Selector owns the active particle strategy
// The strategy is chosen once per configuration version; the selector never switches on its own
// except to fall back to vector when the accelerated device is missing or fails
type Selector struct {
	vector      *Vector
	accelerated *Accelerated

	mu          sync.Mutex
	active      Strategy
	version     uint64
	selected    bool
	requested   parameter.Backend
	deviceLost  bool
	fallbackMsg bool
	advisories  []Advisory

	rendering atomic.Bool
	logger    *slog.Logger
}

// NewSelector creates a selector drawing vector frames on canvas and accelerated frames on device
// A nil device makes every accelerated request fall back
func NewSelector(canvas Canvas, device Device, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Selector{
		vector: NewVector(canvas),
		logger: logger.With("component", "render"),
	}
	if device != nil {
		s.accelerated = NewAccelerated(device)
	}
	s.active = s.vector
	return s
}

// Backend returns the identity of the strategy currently in use
func (s *Selector) Backend() parameter.Backend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Backend()
}

// Requested returns the backend asked for by the last selected configuration
func (s *Selector) Requested() parameter.Backend {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selected {
		return parameter.BackendVector
	}
	return s.requested
}

// Select applies cfg's backend request if its version has not been seen yet
func (s *Selector) Select(cfg config.Configuration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectLocked(cfg)
}

func (s *Selector) selectLocked(cfg config.Configuration) {
	if s.selected && cfg.Version == s.version {
		return
	}
	s.selected = true
	s.version = cfg.Version
	req := cfg.Backend()
	if req != s.requested {
		s.deviceLost = false
	}
	s.requested = req

	switch {
	case req == parameter.BackendVector:
		s.active = s.vector
		s.fallbackMsg = false
	case s.accelerated == nil || !s.accelerated.Available() || s.deviceLost:
		s.active = s.vector
		s.fallback("accelerated rendering unavailable, using vector")
	default:
		s.active = s.accelerated
	}
	s.logger.Debug("backend selected", "requested", req, "active", s.active.Backend(), "version", cfg.Version)
}

// fallback queues the one-time advisory for the current request
func (s *Selector) fallback(msg string) {
	if s.fallbackMsg {
		return
	}
	s.fallbackMsg = true
	s.advisories = append(s.advisories, Advisory{Kind: AdvisoryBackendFallback, Message: msg})
	s.logger.Warn(msg)
}

// Resize forwards the new viewport to both strategies so cached transforms stay current
func (s *Selector) Resize(vp Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vector.Resize(vp)
	if s.accelerated != nil {
		s.accelerated.Resize(vp)
	}
}

// Transform returns the shared layout to device mapping for vp
func (s *Selector) Transform(vp Viewport) Transform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vector.Transform(vp)
}

// Render draws particles with the active strategy
// A device failure mid-frame switches to vector for the rest of this configuration version and redraws
func (s *Selector) Render(particles []particle.Particle, cfg config.Configuration, vp Viewport) (FrameStats, error) {
	if !s.rendering.CompareAndSwap(false, true) {
		return FrameStats{}, ErrReentrantRender
	}
	defer s.rendering.Store(false)

	s.mu.Lock()
	s.selectLocked(cfg)
	active := s.active
	s.mu.Unlock()

	stats, err := active.Render(particles, cfg, vp)
	if err == nil || !errors.Is(err, ErrDeviceUnavailable) || active == Strategy(s.vector) {
		return stats, err
	}

	s.mu.Lock()
	s.logger.Error("accelerated frame failed", "error", err)
	s.deviceLost = true
	s.active = s.vector
	s.fallback("accelerated device lost, using vector")
	s.mu.Unlock()

	return s.vector.Render(particles, cfg, vp)
}

// Advisories drains queued advisories
func (s *Selector) Advisories() []Advisory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.advisories
	s.advisories = nil
	return out
}
