package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/chordflow/engine"
	"github.com/lixenwraith/chordflow/parameter/visual"
	"github.com/lixenwraith/chordflow/render"
	"github.com/lixenwraith/chordflow/render/ebitencanvas"
)

// Window defaults
const (
	defaultWindowWidth  = 960
	defaultWindowHeight = 960
)

// guiKeys binds window keys to the viewer's key actions
var guiKeys = map[ebiten.Key]rune{
	ebiten.KeyP:         'p',
	ebiten.KeyA:         'a',
	ebiten.KeyEqual:     '+',
	ebiten.KeyNumpadAdd: '+',
	ebiten.KeyMinus:     '-',
	ebiten.KeyG:         'g',
	ebiten.KeyM:         'm',
	ebiten.KeyL:         'l',
	ebiten.KeyC:         'c',
	ebiten.KeyR:         'r',
	ebiten.KeySpace:     ' ',
	ebiten.KeyQ:         'q',
}

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Windowed viewer; --accelerated draws particles as GPU triangles",
	RunE:  runGUI,
}

func init() {
	guiCmd.Flags().Int("width", defaultWindowWidth, "window width")
	guiCmd.Flags().Int("height", defaultWindowHeight, "window height")
	rootCmd.AddCommand(guiCmd)
}

// game adapts the engine to ebiten's update/draw loop
type game struct {
	eng    *engine.Engine
	canvas *ebitencanvas.Canvas
	width  int
	height int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, r := range guiKeys {
		if inpututil.IsKeyJustPressed(key) && !dispatch(g.eng, r) {
			return ebiten.Termination
		}
	}
	for _, a := range g.eng.Advisories() {
		app.logger.Info("advisory", "kind", a.Kind, "message", a.Message)
		ebiten.SetWindowTitle("chordflow: " + a.Message)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.SetTarget(screen)
	b := screen.Bounds()
	if _, err := g.eng.Tick(render.Viewport{Width: b.Dx(), Height: b.Dy()}); err != nil {
		app.logger.Error("frame failed", "error", err)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.eng.Resize(render.Viewport{Width: outsideWidth, Height: outsideHeight})
	}
	return outsideWidth, outsideHeight
}

func runGUI(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	canvas := ebitencanvas.New(visual.Background)
	eng := engine.New(app.cfg, engine.Options{Canvas: canvas, Device: canvas, Logger: app.logger})
	eng.SetDataset(app.ds)

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("chordflow")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&game{eng: eng, canvas: canvas}); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
