package termcanvas

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// RGB is an opaque cell color
type RGB struct {
	R, G, B uint8
}

// FromRGBA drops alpha from a straight-alpha color
func FromRGBA(c color.RGBA) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Tcell converts to a true-color tcell color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend is linear alpha blending of src over c
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	inv := 1.0 - alpha
	return RGB{
		R: clamp(float64(src.R)*alpha + float64(c.R)*inv + 0.5),
		G: clamp(float64(src.G)*alpha + float64(c.G)*inv + 0.5),
		B: clamp(float64(src.B)*alpha + float64(c.B)*inv + 0.5),
	}
}

// add is addition with clamping
func add(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Add performs additive blend with clamping, src scaled by alpha
func Add(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	s := Scale(src, alpha)
	return RGB{R: add(c.R, s.R), G: add(c.G, s.G), B: add(c.B, s.B)}
}

// Max returns per-channel maximum with alpha blending
func Max(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	maxed := RGB{R: max(c.R, src.R), G: max(c.G, src.G), B: max(c.B, src.B)}
	return Blend(c, maxed, alpha)
}

// fastDiv255 approximates x / 255 using integer math
// Formula: (x + (x >> 8) + 1) >> 8
func fastDiv255(x int) int {
	return (x + (x >> 8) + 1) >> 8
}

// Screen blend: 1 - (1-Dst)*(1-Src) with alpha blending
func Screen(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	screened := RGB{
		R: uint8(255 - fastDiv255((255-int(c.R))*(255-int(src.R)))),
		G: uint8(255 - fastDiv255((255-int(c.G))*(255-int(src.G)))),
		B: uint8(255 - fastDiv255((255-int(c.B))*(255-int(src.B)))),
	}
	return Blend(c, screened, alpha)
}

// Scale multiplies all channels by factor (0.0-1.0)
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}
