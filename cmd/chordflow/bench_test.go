package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/metrics"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/render"
)

func TestBenchBackend(t *testing.T) {
	s := testSession(nil)
	vp := render.Viewport{Width: 200, Height: 200}

	tests := []struct {
		accelerated bool
		want        parameter.Backend
	}{
		{false, parameter.BackendVector},
		{true, parameter.BackendAccelerated},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			res, err := benchBackend(s, vp, 5, tt.accelerated)
			if err != nil {
				t.Fatal(err)
			}
			if res.Backend != tt.want {
				t.Errorf("backend = %s, want %s", res.Backend, tt.want)
			}
			if len(res.Times) != 5 {
				t.Errorf("times = %d, want 5", len(res.Times))
			}
			if res.Snapshot.Frames != 5 {
				t.Errorf("frames = %d, want 5", res.Snapshot.Frames)
			}
			if got := res.Registry.Ints.Get(metrics.KeyFrames).Load(); got != 5 {
				t.Errorf("registry frames = %d, want 5", got)
			}
			if res.Snapshot.TotalParticles == 0 || res.Draws == 0 {
				t.Errorf("expected particles drawn, got %d particles, %d draws", res.Snapshot.TotalParticles, res.Draws)
			}
		})
	}
}

func TestBenchBackend_ParticlesOff(t *testing.T) {
	s := testSession(func(c *config.Configuration) { c.ParticleMode = false })
	res, err := benchBackend(s, render.Viewport{Width: 100, Height: 100}, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Snapshot.TotalParticles != 0 {
		t.Errorf("particles = %d, want 0", res.Snapshot.TotalParticles)
	}
}

func TestPrintBench(t *testing.T) {
	var buf bytes.Buffer
	printBench(&buf, benchResult{
		Backend: parameter.BackendVector,
		Snapshot: metrics.RenderMetricsSnapshot{
			TotalParticles:        12500,
			ChordsWithParticles:   40,
			Frames:                120,
			FPS:                   31.2,
			RecommendAcceleration: true,
		},
		Times: []float64{1, 2, 3},
		Draws: 1500000,
	}, false)

	out := buf.String()
	for _, want := range []string{"vector: 12,500 particles on 40 chords", "120 frames", "1,500,000 draw calls", "recommended"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "frame time") {
		t.Error("plot should be omitted when disabled")
	}
}
