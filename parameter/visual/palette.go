package visual

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Category palette tuning in HCL space
const (
	PaletteChroma    = 0.55
	PaletteLuminance = 0.68

	// PaletteHueOffset rotates the palette so the first category is not pure red
	PaletteHueOffset = 18.0
)

// Fixed interface colors
var (
	Background = color.RGBA{R: 26, G: 27, B: 38, A: 255} // Tokyo Night
	ArcStroke  = color.RGBA{R: 192, G: 202, B: 245, A: 255}
	ChordLine  = color.RGBA{R: 86, G: 95, B: 137, A: 255}
	StatusText = color.RGBA{R: 169, G: 177, B: 214, A: 255}
	Warning    = color.RGBA{R: 224, G: 175, B: 104, A: 255}
)

// CategoryPalette returns n visually distinct colors spaced evenly around the HCL hue wheel
// Deterministic for a given n so categories keep their color across sessions
func CategoryPalette(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	step := 360.0 / float64(n)
	for i := range out {
		h := math.Mod(PaletteHueOffset+float64(i)*step, 360)
		out[i] = ToRGBA(colorful.Hcl(h, PaletteChroma, PaletteLuminance).Clamped(), 255)
	}
	return out
}

// Gradient blends from → to in Lab space at t, used for chord direction coloring
func Gradient(from, to color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	a := FromRGBA(from)
	b := FromRGBA(to)
	alpha := float64(from.A) + (float64(to.A)-float64(from.A))*t
	return ToRGBA(a.BlendLab(b, t).Clamped(), uint8(math.Round(alpha)))
}

// FromRGBA converts a straight-alpha RGBA to a colorful.Color ignoring alpha
func FromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ToRGBA converts a colorful.Color with explicit alpha
func ToRGBA(c colorful.Color, a uint8) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// Hex returns the #rrggbb form used by SVG fills
func Hex(c color.RGBA) string {
	return FromRGBA(c).Hex()
}
