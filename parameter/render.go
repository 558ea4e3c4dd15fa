package parameter

// Backend Recommendation
const (
	// AccelerationThreshold is the particle count above which the vector backend is advised against
	AccelerationThreshold = 2000
)

// Metrics
const (
	// FPSSmoothing is the EMA weight of the newest fps sample
	FPSSmoothing = 0.1

	// FPSWindow is the number of frames tracked for peak/trough
	FPSWindow = 120
)

// Accelerated Tessellation
const (
	QualitySegmentsLow    = 4
	QualitySegmentsMedium = 8
	QualitySegmentsHigh   = 16

	// MaxBatchVertices is the vertex limit of one draw call (uint16 indices)
	MaxBatchVertices = 65535
)

// Layout
const (
	// DefaultPlaceholderWeight is the layout weight given to links without a weight
	DefaultPlaceholderWeight = 0.5

	// DefaultArcPadding is the angular gap between node arcs in radians
	DefaultArcPadding = 0.02

	// DefaultCurvature pulls chord control points fully to the center
	DefaultCurvature = 1.0

	// LoopDepth is how far a self-chord loop dips inward as a fraction of radius
	LoopDepth = 0.35

	// LayoutRadius is the outer circle radius in layout units
	LayoutRadius = 1.0

	// ViewportPadding is the fraction of the half-extent kept empty around the diagram
	ViewportPadding = 0.08

	// PolylineSegments is the sample count used to draw chord and arc outlines
	PolylineSegments = 24

	// LabelOffset places node labels just outside the outer circle, as a radius multiple
	LabelOffset = 1.06

	// CellAspect is the terminal cell height/width ratio
	CellAspect = 2.1
)

// Styling Defaults
const (
	DefaultChordOpacity = 0.35
	DefaultChordWidth   = 1.0
	DefaultArcWidth     = 0.04
)

// Layout Limits
const (
	MaxArcPadding = 0.5
	MaxCurvature  = 1.0
	MaxChordWidth = 10.0
	MaxArcWidth   = 0.5
)
