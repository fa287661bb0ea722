package core

import (
	"strings"
)

// Color is a foreground color for a canvas cell. The terminal host maps
// each value onto an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Cell is a single character position on the canvas.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Canvas is the draw target handed to screens. Screens draw runes into it
// and the host decides how the finished frame reaches the terminal.
type Canvas struct {
	width  int
	height int
	cells  []Cell // row-major, width*height
}

// NewCanvas creates a blank canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.alloc(width, height)
	return c
}

func (c *Canvas) alloc(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	c.cells = make([]Cell, c.width*c.height)
	c.Clear()
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() Size {
	return Size{W: c.width, H: c.height}
}

// Resize changes the dimensions, keeping the overlapping top-left content.
func (c *Canvas) Resize(width, height int) {
	if width == c.width && height == c.height {
		return
	}

	old, oldW, oldH := c.cells, c.width, c.height
	c.alloc(width, height)

	for y := range min(oldH, c.height) {
		copy(c.cells[y*c.width:y*c.width+min(oldW, c.width)], old[y*oldW:])
	}
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	c.Fill(' ')
}

// Fill sets every cell to r with the default color.
func (c *Canvas) Fill(r rune) {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: r}
	}
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Set places a rune with the default color. Out-of-bounds writes are ignored.
func (c *Canvas) Set(x, y int, r rune) {
	c.SetCell(x, y, Cell{Rune: r})
}

// SetColor places a colored rune. Out-of-bounds writes are ignored.
func (c *Canvas) SetColor(x, y int, r rune, col Color) {
	c.SetCell(x, y, Cell{Rune: r, Color: col})
}

// SetCell places a cell. Out-of-bounds writes are ignored.
func (c *Canvas) SetCell(x, y int, cell Cell) {
	if !c.inside(x, y) {
		return
	}
	c.cells[y*c.width+x] = cell
}

// Get returns the rune at (x, y), or a space when out of bounds.
func (c *Canvas) Get(x, y int) rune {
	return c.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell when out of bounds.
func (c *Canvas) GetCell(x, y int) Cell {
	if !c.inside(x, y) {
		return blank
	}
	return c.cells[y*c.width+x]
}

// DrawText writes text starting at (x, y), clipped to the canvas.
func (c *Canvas) DrawText(x, y int, text string) {
	c.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes colored text starting at (x, y).
func (c *Canvas) DrawTextColor(x, y int, text string, col Color) {
	i := 0
	for _, r := range text {
		c.SetColor(x+i, y, r, col)
		i++
	}
}

// DrawTextCentered writes text horizontally centered on row y.
func (c *Canvas) DrawTextCentered(y int, text string, col Color) {
	x := (c.width - len([]rune(text))) / 2
	c.DrawTextColor(x, y, text, col)
}

// DrawRect fills r with the given rune.
func (c *Canvas) DrawRect(r Rect, fill rune, col Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.SetColor(x, y, fill, col)
		}
	}
}

// DrawBox outlines r with box-drawing characters.
func (c *Canvas) DrawBox(r Rect, col Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1

	c.SetColor(r.X, r.Y, '┌', col)
	c.SetColor(right, r.Y, '┐', col)
	c.SetColor(r.X, bottom, '└', col)
	c.SetColor(right, bottom, '┘', col)

	for x := r.X + 1; x < right; x++ {
		c.SetColor(x, r.Y, '─', col)
		c.SetColor(x, bottom, '─', col)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.SetColor(r.X, y, '│', col)
		c.SetColor(right, y, '│', col)
	}
}

// String returns the canvas runes, one line per row, without colors.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := range c.height {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, cell := range c.cells[y*c.width : (y+1)*c.width] {
			sb.WriteRune(cell.Rune)
		}
	}
	return sb.String()
}

// Row returns row y as a string, or spaces when out of bounds.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return strings.Repeat(" ", c.width)
	}
	runes := make([]rune, c.width)
	for x, cell := range c.cells[y*c.width : (y+1)*c.width] {
		runes[x] = cell.Rune
	}
	return string(runes)
}
