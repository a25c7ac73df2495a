package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Layer decides which style a cell is rendered with. A cell takes the
// highest layer drawn into it.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerGround
	LayerPredicted
	LayerPath
	LayerBody
)

// Canvas is a braille pixel grid of Width×Height cells, i.e.
// (Width*2)×(Height*4) dots, with y growing downwards.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	layers        [][]Layer
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		layers: make([][]Layer, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.layers[i] = make([]Layer, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in dot coordinates. Out-of-range dots are
// ignored.
func (c *Canvas) Set(x, y int, l Layer) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
	if l > c.layers[row][col] {
		c.layers[row][col] = l
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.layers[i][j] = LayerNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, l Layer) {
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
		c.Set(x0, y0, l)
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

// DrawDisc fills a small disc of radius r dots around (cx, cy).
func (c *Canvas) DrawDisc(cx, cy, r int, l Layer) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy, l)
			}
		}
	}
}

// LayerAt reports the layer of the cell holding dot (x, y).
func (c *Canvas) LayerAt(x, y int) Layer {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return LayerNone
	}
	return c.layers[y/4][x/2]
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colours every cell with the style of its layer. Runs of cells on
// the same layer are rendered together.
func (c *Canvas) Render(styles map[Layer]lipgloss.Style) string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.layers[row][col] == c.layers[row][start] {
				continue
			}
			run := string(c.Grid[row][start:col])
			if st, ok := styles[c.layers[row][start]]; ok {
				run = st.Render(run)
			}
			b.WriteString(run)
			start = col
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
