package termcanvas

import (
	"github.com/gdamore/tcell/v2"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Buffer is a cell compositor with dirty tracking
// Untouched cells receive the background color on flush
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
	bg      RGB
}

// NewBuffer creates a buffer with the specified dimensions and background
func NewBuffer(width, height int, bg RGB) *Buffer {
	b := &Buffer{bg: bg}
	b.Resize(width, height)
	return b
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: b.bg, Bg: b.bg}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y; out of bounds returns the zero cell
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set composites a cell with the specified blend mode
// A zero rune keeps the existing glyph
func (b *Buffer) Set(x, y int, r rune, fg, bg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]

	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if r != 0 {
		dst.Rune = r
	}
	if flags&flagBg != 0 {
		dst.Bg = apply(op, dst.Bg, bg, alpha)
		b.touched[idx] = true
	}
	if flags&flagFg != 0 {
		dst.Fg = apply(op, dst.Fg, fg, alpha)
	}
}

// Flush writes every cell to the screen and shows it
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			c := b.cells[idx]
			if !b.touched[idx] {
				c.Bg = b.bg
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.Foreground(c.Fg.Tcell()).Background(c.Bg.Tcell())
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}
