package render

import (
	"fmt"

	"github.com/lixenwraith/chordflow/config"
)

// RenderPriority determines layer order. Lower values render first
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityChords
	PriorityArcs
	PriorityParticles
	PriorityOverlay
)

// FrameContext provides frame state for layers, passed by value
type FrameContext struct {
	Viewport  Viewport
	Transform Transform
	Config    config.Configuration
}

// Layer is implemented by anything drawn onto the frame canvas
type Layer interface {
	Draw(ctx FrameContext, canvas Canvas) error
}

// VisibilityToggle is optionally implemented for configuration-driven enable/disable
type VisibilityToggle interface {
	Visible(cfg config.Configuration) bool
}

type layerEntry struct {
	layer    Layer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the frame pipeline: begin, draw layers in priority order, end
type Orchestrator struct {
	canvas   Canvas
	layers   []layerEntry
	regCount int
	cache    transformCache
}

// NewOrchestrator creates an orchestrator drawing on canvas
func NewOrchestrator(canvas Canvas) *Orchestrator {
	return &Orchestrator{
		canvas: canvas,
		layers: make([]layerEntry, 0, 8),
	}
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(l Layer, priority RenderPriority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// RenderFrame executes the pipeline; the first layer error aborts the frame after End
func (o *Orchestrator) RenderFrame(vp Viewport, cfg config.Configuration) error {
	if err := o.canvas.Begin(vp); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	ctx := FrameContext{
		Viewport:  vp,
		Transform: o.cache.get(vp),
		Config:    cfg,
	}

	var drawErr error
	for _, entry := range o.layers {
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.Visible(cfg) {
			continue
		}
		if err := entry.layer.Draw(ctx, o.canvas); err != nil {
			drawErr = fmt.Errorf("layer %d: %w", entry.priority, err)
			break
		}
	}

	if err := o.canvas.End(); err != nil && drawErr == nil {
		drawErr = fmt.Errorf("end frame: %w", err)
	}
	return drawErr
}
