package parameter

import "time"

// Generation Scheduling
const (
	// DefaultBatchSize is the chord count processed per progressive batch
	DefaultBatchSize = 10

	// MaxBatchSize bounds the batch size setting
	MaxBatchSize = 10_000

	// DefaultBatchesPerTick is batches advanced per host frame
	DefaultBatchesPerTick = 1

	// SyncChordThreshold is the chord count below which non-progressive generation runs inline
	SyncChordThreshold = 200

	// WarnLogInterval spaces degenerate-geometry warnings
	WarnLogInterval = time.Second

	// WarnLogBurst is the number of warnings allowed before rate limiting applies
	WarnLogBurst = 5

	// JobIDLength is the random part length of generation job IDs
	JobIDLength = 10
)

// Frame Timing
const (
	// FrameUpdateInterval is the host frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// WatchDebounce coalesces bursts of config file writes
	WatchDebounce = 100 * time.Millisecond
)

// Scheduling Limits
const (
	MaxBatchesPerTick = 1000
)
