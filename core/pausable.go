package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock derives animation time from a base clock, frozen while paused
type PausableClock struct {
	mu sync.RWMutex

	base      Clock
	startReal time.Time // base reading at creation
	epoch     time.Time // animation time epoch

	// Pause state
	isPaused   atomic.Bool
	pauseStart time.Time     // base reading when the current pause started
	paused     time.Duration // cumulative pause duration
}

// NewPausableClock creates a running clock over base; nil base uses real time
func NewPausableClock(base Clock) *PausableClock {
	base = OrDefault(base)
	now := base.Now()
	return &PausableClock{
		base:      base,
		startReal: now,
		epoch:     now,
	}
}

// Now returns animation time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.epoch.Add(pc.pauseStart.Sub(pc.startReal) - pc.paused)
	}
	return pc.epoch.Add(pc.base.Now().Sub(pc.startReal) - pc.paused)
}

// Pause stops time advancement; repeated calls are no-ops
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStart = pc.base.Now()
	}
}

// Resume continues time advancement; repeated calls are no-ops
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		if !pc.pauseStart.IsZero() {
			pc.paused += pc.base.Now().Sub(pc.pauseStart)
			pc.pauseStart = time.Time{}
		}
	}
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// PausedFor returns cumulative pause time including the current pause
func (pc *PausableClock) PausedFor() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.paused
	if pc.isPaused.Load() && !pc.pauseStart.IsZero() {
		total += pc.base.Now().Sub(pc.pauseStart)
	}
	return total
}
