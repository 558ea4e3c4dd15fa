package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lixenwraith/chordflow/config"
	"github.com/lixenwraith/chordflow/core"
	"github.com/lixenwraith/chordflow/engine"
	"github.com/lixenwraith/chordflow/parameter"
	"github.com/lixenwraith/chordflow/parameter/visual"
	"github.com/lixenwraith/chordflow/render"
	"github.com/lixenwraith/chordflow/render/termcanvas"
)

// densityStep is the change applied by one +/- key press
const densityStep = 0.25

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Interactive terminal viewer",
	Long: `Interactive terminal viewer.

Keys: p particles, a accelerated, +/- density, g distribution, c cancel,
r regenerate, l layers, m quality, space pause, q quit`,
	RunE: runView,
}

func init() {
	addViewFlags(viewCmd)
	rootCmd.AddCommand(viewCmd)
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("watch", "", "partial configuration file hot-applied on change")
}

func runView(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("view needs an interactive terminal; use frame for headless output")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	core.OnCrash(screen.Fini)

	canvas := termcanvas.New(screen, visual.Background)
	eng := engine.New(app.cfg, engine.Options{Canvas: canvas, Device: canvas, Logger: app.logger})
	eng.SetDataset(app.ds)

	var updates <-chan config.Update
	if path, _ := cmd.Flags().GetString("watch"); path != "" {
		w, err := config.NewWatcher(path, app.logger)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		updates = w.Updates
	}

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	notice := ""
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				eng.Resize(viewport(screen))
			case *tcell.EventKey:
				if !handleKey(eng, ev) {
					return nil
				}
			}

		case u, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			eng.ApplyUpdates(u)

		case <-ticker.C:
			if _, err := eng.Tick(viewport(screen)); err != nil {
				app.logger.Error("frame failed", "error", err)
			}
			for _, a := range eng.Advisories() {
				notice = a.Message
			}
			drawStatus(screen, eng, notice)
		}
	}
}

// viewport reserves the bottom row for the status line
func viewport(screen tcell.Screen) render.Viewport {
	w, h := screen.Size()
	return render.Viewport{Width: w, Height: max(h-1, 0), Aspect: parameter.CellAspect}
}

// handleKey applies the key's action and reports whether the viewer should keep running
func handleKey(eng *engine.Engine, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		return dispatch(eng, ev.Rune())
	}
	return true
}

// dispatch runs the action bound to r; false means quit
func dispatch(eng *engine.Engine, r rune) bool {
	switch r {
	case 'q':
		return false
	case 'c':
		eng.Cancel()
	case 'r':
		eng.Regenerate()
	case ' ':
		eng.TogglePause()
	default:
		if u, ok := keyUpdate(eng.Config(), r); ok {
			eng.ApplyUpdates(u)
		}
	}
	return true
}

// keyUpdate maps a configuration key to the partial update it requests
func keyUpdate(cfg config.Configuration, r rune) (config.Update, bool) {
	cur := cfg.Sanitize()
	switch r {
	case 'p':
		return config.Update{ParticleMode: config.Ptr(!cur.ParticleMode)}, true
	case 'a':
		return config.Update{UseAcceleratedRenderer: config.Ptr(!cur.UseAcceleratedRenderer)}, true
	case '+', '=':
		d := min(cur.ParticleDensity+densityStep, parameter.MaxParticleDensity)
		return config.Update{ParticleDensity: config.Ptr(d)}, true
	case '-', '_':
		d := max(cur.ParticleDensity-densityStep, 0)
		return config.Update{ParticleDensity: config.Ptr(d)}, true
	case 'g':
		return config.Update{ParticleDistribution: config.Ptr(cur.ParticleDistribution.Next())}, true
	case 'm':
		return config.Update{AcceleratedQuality: config.Ptr(cur.AcceleratedQuality.Next())}, true
	case 'l':
		// arcs, then arcs and chords, then everything, then back to arcs
		chords, labels := true, false
		switch {
		case cur.ShowChords && cur.ShowLabels:
			chords, labels = false, false
		case cur.ShowChords:
			chords, labels = true, true
		}
		return config.Update{ShowArcs: config.Ptr(true), ShowChords: config.Ptr(chords), ShowLabels: config.Ptr(labels)}, true
	}
	return config.Update{}, false
}

// drawStatus writes the status line below the diagram
func drawStatus(screen tcell.Screen, eng *engine.Engine, notice string) {
	w, h := screen.Size()
	if h == 0 {
		return
	}
	line := statusLine(eng.Config().Sanitize(), eng.Progress(), eng.Snapshot(), notice)
	fg := termcanvas.FromRGBA(visual.StatusText).Tcell()
	bg := termcanvas.FromRGBA(visual.Background).Tcell()
	if notice != "" {
		fg = termcanvas.FromRGBA(visual.Warning).Tcell()
	}
	style := tcell.StyleDefault.Foreground(fg).Background(bg)
	runes := []rune(line)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		screen.SetContent(x, h-1, r, nil, style)
	}
	screen.Show()
}
