package termcanvas

// BlendMode defines compositing operations using a bitmask (Flags | Op)
type BlendMode uint8

// Blend Operations (0-15)
const (
	opReplace uint8 = 0x00
	opAlpha   uint8 = 0x01
	opAdd     uint8 = 0x02
	opMax     uint8 = 0x03
	opScreen  uint8 = 0x04
)

// Blend Flags
const (
	flagBg uint8 = 0x10 // Apply operation to Background
	flagFg uint8 = 0x20 // Apply operation to Foreground
)

// Pre-defined Blend Modes
const (
	BlendReplace = BlendMode(opReplace | flagBg | flagFg)
	BlendAlpha   = BlendMode(opAlpha | flagBg | flagFg)
	BlendAdd     = BlendMode(opAdd | flagBg | flagFg)

	// Targeted Modes
	BlendAlphaFg  = BlendMode(opAlpha | flagFg)
	BlendAlphaBg  = BlendMode(opAlpha | flagBg)
	BlendScreenFg = BlendMode(opScreen | flagFg)
	BlendScreenBg = BlendMode(opScreen | flagBg)
	BlendMaxFg    = BlendMode(opMax | flagFg)
)

// apply runs op on one channel pair
func apply(op uint8, dst, src RGB, alpha float64) RGB {
	switch op {
	case opAlpha:
		return Blend(dst, src, alpha)
	case opAdd:
		return Add(dst, src, alpha)
	case opMax:
		return Max(dst, src, alpha)
	case opScreen:
		return Screen(dst, src, alpha)
	default:
		return src
	}
}
