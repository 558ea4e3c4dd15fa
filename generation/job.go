// Package generation runs cancellable, batched particle generation across a chord set
package generation

import (
	"fmt"
	"sync"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/lixenwraith/chordflow/parameter"
)

// Status is the lifecycle state of a generation job
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCancelled Status = "cancelled"
	StatusComplete  Status = "complete"
)

// Terminal reports whether no further batches will run
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusComplete
}

// JobIDPrefix is prepended to every generated job ID
const JobIDPrefix = "gen-"

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Progress is a point-in-time view of a job for progress bars and cancel buttons
type Progress struct {
	JobID           string
	Status          Status
	ChordsTotal     int
	ChordsProcessed int
	ChordsSkipped   int
	ParticlesSoFar  int
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Fraction returns processed/total in [0,1]; an empty job counts as done
func (p Progress) Fraction() float64 {
	if p.ChordsTotal == 0 {
		if p.Status == StatusIdle {
			return 0
		}
		return 1
	}
	return float64(p.ChordsProcessed) / float64(p.ChordsTotal)
}

// Job is one generation pass; replaced, never reused, by the next Initialize
type Job struct {
	id string

	mu          sync.Mutex
	status      Status
	chordsTotal int
	processed   int
	skipped     int
	particles   int
	startedAt   time.Time
	finishedAt  time.Time
}

func newJob(total int, now time.Time) *Job {
	id, err := nanoid.Generate(idAlphabet, parameter.JobIDLength)
	if err != nil {
		id = fmt.Sprintf("%x", now.UnixNano())
	}
	return &Job{
		id:          JobIDPrefix + id,
		status:      StatusRunning,
		chordsTotal: total,
		startedAt:   now,
	}
}

// ID returns the job identifier
func (j *Job) ID() string {
	return j.id
}

// Status returns the current lifecycle state
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Progress returns a snapshot of the job counters
func (j *Job) Progress() Progress {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.progressLocked()
}

func (j *Job) progressLocked() Progress {
	return Progress{
		JobID:           j.id,
		Status:          j.status,
		ChordsTotal:     j.chordsTotal,
		ChordsProcessed: j.processed,
		ChordsSkipped:   j.skipped,
		ParticlesSoFar:  j.particles,
		StartedAt:       j.startedAt,
		FinishedAt:      j.finishedAt,
	}
}

// cancel moves a running job to cancelled; terminal jobs are left untouched
func (j *Job) cancel(now time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status != StatusRunning {
		return false
	}
	j.status = StatusCancelled
	j.finishedAt = now
	return true
}
