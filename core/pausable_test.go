package core

import (
	"testing"
	"time"
)

func TestPausableClockFreezesWhilePaused(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	base := NewMockTimeProvider(start)
	pc := NewPausableClock(base)

	base.Advance(time.Second)
	if got := pc.Now().Sub(start); got != time.Second {
		t.Fatalf("Expected 1s elapsed, got %v", got)
	}

	pc.Pause()
	pc.Pause()
	base.Advance(5 * time.Second)
	if got := pc.Now().Sub(start); got != time.Second {
		t.Errorf("Expected time frozen at 1s, got %v", got)
	}
	if got := pc.PausedFor(); got != 5*time.Second {
		t.Errorf("Expected 5s paused, got %v", got)
	}

	pc.Resume()
	pc.Resume()
	base.Advance(2 * time.Second)
	if got := pc.Now().Sub(start); got != 3*time.Second {
		t.Errorf("Expected 3s after resume, got %v", got)
	}
}

func TestPausableClockToggle(t *testing.T) {
	pc := NewPausableClock(NewMockTimeProvider(time.Unix(0, 0)))
	if !pc.Toggle() || !pc.IsPaused() {
		t.Error("First toggle should pause")
	}
	if pc.Toggle() || pc.IsPaused() {
		t.Error("Second toggle should resume")
	}
}
