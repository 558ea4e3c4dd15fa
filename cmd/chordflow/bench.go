package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/engine"
	"github.com/lixenwraith/chordflow/metrics"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/render"
	"github.com/lixenwraith/chordflow/status"
)

// Bench defaults
const (
	defaultBenchFrames = 120
	defaultBenchSize   = 800

	benchPlotHeight = 10
	benchPlotWidth  = 60
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare frame times of the vector and accelerated backends headless",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().Int("frames", defaultBenchFrames, "frames rendered per backend after generation completes")
	benchCmd.Flags().Int("size", defaultBenchSize, "square viewport size")
	benchCmd.Flags().Bool("plot", true, "plot frame times when stdout is a terminal")
	benchCmd.Flags().Bool("metrics", false, "dump the metrics registry after each backend")
	rootCmd.AddCommand(benchCmd)
}

// benchResult is one backend's run
type benchResult struct {
	Backend  parameter.Backend
	Snapshot metrics.RenderMetricsSnapshot
	Times    []float64
	Draws    int
	Registry *status.Registry
}

func runBench(cmd *cobra.Command, args []string) error {
	frames, _ := cmd.Flags().GetInt("frames")
	size, _ := cmd.Flags().GetInt("size")
	plot, _ := cmd.Flags().GetBool("plot")
	dump, _ := cmd.Flags().GetBool("metrics")
	if frames < 1 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}
	plot = plot && term.IsTerminal(int(os.Stdout.Fd()))

	vp := render.Viewport{Width: size, Height: size}
	out := cmd.OutOrStdout()
	for _, accelerated := range []bool{false, true} {
		res, err := benchBackend(app, vp, frames, accelerated)
		if err != nil {
			return err
		}
		printBench(out, res, plot)
		if dump {
			for _, e := range res.Registry.Entries() {
				fmt.Fprintf(out, "  %-32s %s\n", e.Key, e.Value)
			}
		}
	}
	return nil
}

// benchBackend generates particles to completion, then renders frames into an in-memory device
func benchBackend(s session, vp render.Viewport, frames int, accelerated bool) (benchResult, error) {
	rec := render.NewRecorder()
	reg := status.NewRegistry()
	cfg := config.Apply(s.cfg, config.Update{UseAcceleratedRenderer: config.Ptr(accelerated)})
	eng := engine.New(cfg, engine.Options{Canvas: rec, Device: rec, Logger: s.logger, Registry: reg})
	eng.SetDataset(s.ds)

	for i := 0; cfg.ParticleMode && i < maxWarmupTicks && !eng.Progress().Status.Terminal(); i++ {
		if _, err := eng.Tick(render.Viewport{}); err != nil {
			return benchResult{}, err
		}
	}
	eng.Metrics().Reset()

	res := benchResult{Times: make([]float64, 0, frames), Registry: reg}
	for i := 0; i < frames; i++ {
		stats, err := eng.Tick(vp)
		if err != nil {
			return res, err
		}
		res.Draws += stats.DrawCalls
		res.Times = append(res.Times, eng.Snapshot().RenderTimeMs)
	}
	res.Backend = eng.Backend()
	res.Snapshot = eng.Snapshot()
	return res, nil
}

func printBench(w io.Writer, res benchResult, plot bool) {
	snap := res.Snapshot
	fmt.Fprintf(w, "%s: %s particles on %s chords, %s frames, %s draw calls\n",
		res.Backend,
		humanize.Comma(int64(snap.TotalParticles)),
		humanize.Comma(int64(snap.ChordsWithParticles)),
		humanize.Comma(snap.Frames),
		humanize.Comma(int64(res.Draws)))
	fmt.Fprintf(w, "  fps %.1f (peak %.1f, trough %.1f), last frame %.2f ms\n",
		snap.FPS, snap.PeakFPS, snap.TroughFPS, snap.RenderTimeMs)
	if snap.RecommendAcceleration {
		fmt.Fprintf(w, "  above %s particles, accelerated rendering recommended\n", humanize.Comma(parameter.AccelerationThreshold))
	}
	if plot && len(res.Times) > 1 {
		fmt.Fprintln(w, asciigraph.Plot(res.Times,
			asciigraph.Height(benchPlotHeight),
			asciigraph.Width(benchPlotWidth),
			asciigraph.Caption(fmt.Sprintf("%s frame time (ms)", res.Backend))))
	}
}
