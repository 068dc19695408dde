package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a braille grid with one color per cell. The last color written
// into a cell wins.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]colorful.Color
	inked         [][]bool
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]colorful.Color, h),
		inked:  make([][]bool, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]colorful.Color, w)
		c.inked[i] = make([]bool, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set lights the dot at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	row, col, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= bit
}

// SetColor lights the dot and tints its cell.
func (c *Canvas) SetColor(x, y int, col colorful.Color) {
	row, cx, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.Grid[row][cx] |= bit
	c.Colors[row][cx] = col
	c.inked[row][cx] = true
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	row, col, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &^= bit
}

func (c *Canvas) locate(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, rune(pixelMap[y%4][x%2]), true
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	row, col, bit, ok := c.locate(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.inked[i][j] = false
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col colorful.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.SetColor(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawGradientLine draws a line blending from one color to another.
func (c *Canvas) DrawGradientLine(x0, y0, x1, y1 int, from, to colorful.Color) {
	steps := absInt(x1-x0) + absInt(y1-y0)
	if steps == 0 {
		c.SetColor(x0, y0, from)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(float64(x1-x0)*t+0.5*sign(x1-x0))
		y := y0 + int(float64(y1-y0)*t+0.5*sign(y1-y0))
		c.SetColor(x, y, from.BlendRgb(to, t))
	}
}

// String renders the bare braille glyphs.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the grid with per-cell foreground colors.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if !c.inked[i][j] || r == brailleBlank {
				b.WriteRune(r)
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Colors[i][j].Clamped().Hex()))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
