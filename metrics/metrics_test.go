package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/chordflow/core"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/status"
)

func TestShouldRecommendAcceleration(t *testing.T) {
	tests := []struct {
		name    string
		backend parameter.Backend
		total   int
		want    bool
	}{
		{"vector above threshold", parameter.BackendVector, 2001, true},
		{"vector below threshold", parameter.BackendVector, 1999, false},
		{"vector at threshold", parameter.BackendVector, 2000, false},
		{"already accelerated", parameter.BackendAccelerated, 10000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRecommendAcceleration(tt.backend, tt.total); got != tt.want {
				t.Errorf("ShouldRecommendAcceleration(%s, %d) = %v, want %v", tt.backend, tt.total, got, tt.want)
			}
		})
	}
}

func TestRecordFrameEMA(t *testing.T) {
	clock := core.NewMockTimeProvider(time.Unix(0, 0))
	e := NewEngine(nil, clock)

	e.RecordFrame(10)
	snap := e.Snapshot()
	if snap.FPS != 100 {
		t.Fatalf("First frame: expected fps 100 from render time, got %f", snap.FPS)
	}

	clock.Advance(20 * time.Millisecond)
	e.RecordFrame(5)
	snap = e.Snapshot()
	want := 100 + parameter.FPSSmoothing*(50-100)
	if math.Abs(snap.FPS-want) > 1e-9 {
		t.Errorf("Expected smoothed fps %f, got %f", want, snap.FPS)
	}
	if snap.PeakFPS != 100 || math.Abs(snap.TroughFPS-want) > 1e-9 {
		t.Errorf("Expected peak 100 trough %f, got %f/%f", want, snap.PeakFPS, snap.TroughFPS)
	}
	if snap.RenderTimeMs != 5 || snap.Frames != 2 {
		t.Errorf("Expected last render 5ms over 2 frames, got %f/%d", snap.RenderTimeMs, snap.Frames)
	}
}

func TestRecordFrameZeroIntervalFallsBack(t *testing.T) {
	clock := core.NewMockTimeProvider(time.Unix(0, 0))
	e := NewEngine(nil, clock)
	e.RecordFrame(20)
	e.RecordFrame(20)
	if got := e.Snapshot().FPS; got != 50 {
		t.Errorf("Expected 50 fps from render time when clock is frozen, got %f", got)
	}

	fresh := NewEngine(nil, clock)
	fresh.RecordFrame(0)
	if got := fresh.Snapshot(); got.FPS != 0 || got.Frames != 1 {
		t.Errorf("Zero render time with no interval should leave fps unset, got %+v", got)
	}
}

func TestPeakTroughWindowRolls(t *testing.T) {
	clock := core.NewMockTimeProvider(time.Unix(0, 0))
	e := NewEngine(nil, clock)

	e.RecordFrame(5) // 200 fps spike
	for i := 0; i < parameter.FPSWindow+10; i++ {
		clock.Advance(20 * time.Millisecond)
		e.RecordFrame(1)
	}
	snap := e.Snapshot()
	if snap.PeakFPS >= 200 {
		t.Errorf("Spike should have left the window, peak %f", snap.PeakFPS)
	}
	if snap.TroughFPS < 50-1e-6 || snap.TroughFPS > snap.PeakFPS {
		t.Errorf("Trough out of range: %f (peak %f)", snap.TroughFPS, snap.PeakFPS)
	}
	if math.Abs(snap.FPS-50) > 1 {
		t.Errorf("EMA should converge near 50, got %f", snap.FPS)
	}
}

func TestSnapshotRecommendationFollowsBackend(t *testing.T) {
	e := NewEngine(nil, nil)
	e.RecordParticles(5000, 40)
	if !e.Snapshot().RecommendAcceleration || !e.Recommend() {
		t.Error("Expected recommendation on vector with 5000 particles")
	}
	e.SetBackend(parameter.BackendAccelerated)
	if e.Snapshot().RecommendAcceleration {
		t.Error("No recommendation once accelerated")
	}
}

func TestPublishesToRegistry(t *testing.T) {
	reg := status.NewRegistry()
	clock := core.NewMockTimeProvider(time.Unix(0, 0))
	e := NewEngine(reg, clock)

	e.RecordGeneration(300, 3, 10)
	e.RecordParticles(2500, 3)
	e.RecordFrame(4)

	if got := reg.Ints.Get(KeyParticlesSoFar).Load(); got != 300 {
		t.Errorf("Expected 300 particles so far, got %d", got)
	}
	if got := reg.Ints.Get(KeyChordsTotal).Load(); got != 10 {
		t.Errorf("Expected 10 chords total, got %d", got)
	}
	if got := reg.Floats.Get(KeyFPS).Get(); got != 250 {
		t.Errorf("Expected fps 250, got %f", got)
	}
	if got := reg.Strings.Get(KeyBackend).Load(); got != "vector" {
		t.Errorf("Expected vector backend, got %q", got)
	}
	if !reg.Bools.Get(KeyRecommend).Load() {
		t.Error("Expected recommendation flag published")
	}
	if e.Registry() != reg {
		t.Error("Registry accessor returned a different registry")
	}
}

func TestResetClearsHistory(t *testing.T) {
	e := NewEngine(nil, core.NewMockTimeProvider(time.Unix(0, 0)))
	e.RecordFrame(10)
	e.RecordParticles(10, 1)
	e.Reset()
	snap := e.Snapshot()
	if snap.FPS != 0 || snap.PeakFPS != 0 {
		t.Errorf("Expected cleared fps history, got %+v", snap)
	}
	if snap.TotalParticles != 10 {
		t.Error("Reset must keep particle counters")
	}
}
