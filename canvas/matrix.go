package canvas

import (
	"errors"
	"strings"
	"topo/geometry"

	"github.com/mattn/go-runewidth"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// wideTail marks the cell covered by the right half of a wide character.
const wideTail = '\x00'

// Cell is a character position. Origin is top-left, Y grows downward.
type Cell struct {
	X, Y int
}

// MatrixCanvas is a rune matrix with simple drawing primitives. Rows are
// views into one backing slice.
//
// MatrixCanvas is NOT thread-safe for writes.
type MatrixCanvas struct {
	cells  []rune
	rows   [][]rune
	width  int
	height int
}

// NewMatrixCanvas creates a blank canvas of width x height cells.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	c := &MatrixCanvas{
		cells:  make([]rune, width*height),
		rows:   make([][]rune, height),
		width:  width,
		height: height,
	}
	for y := range c.rows {
		c.rows[y] = c.cells[y*width : (y+1)*width : (y+1)*width]
	}
	c.Clear()
	return c, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

// Matrix returns the rows of the canvas. Writes through it are visible.
func (c *MatrixCanvas) Matrix() [][]rune {
	return c.rows
}

// Get returns the character at p, or ' ' outside the canvas.
func (c *MatrixCanvas) Get(p Cell) rune {
	if !c.inside(p.X, p.Y) {
		return ' '
	}
	return c.rows[p.Y][p.X]
}

// Set places a character at p.
func (c *MatrixCanvas) Set(p Cell, char rune) error {
	if !c.inside(p.X, p.Y) {
		return ErrOutOfBounds
	}
	c.rows[p.Y][p.X] = char
	return nil
}

// Clear resets the canvas to all spaces.
func (c *MatrixCanvas) Clear() {
	for i := range c.cells {
		c.cells[i] = ' '
	}
}

// String returns the canvas as newline separated rows. Continuation cells
// of wide characters are skipped.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(len(c.cells) + c.height)
	for y, row := range c.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range row {
			if r != wideTail {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// DrawLine plots every cell on the Bresenham line from p1 to p2 inclusive.
// Cells outside the canvas are clipped.
func (c *MatrixCanvas) DrawLine(p1, p2 Cell, char rune) {
	dx, dy := geometry.Abs(p2.X-p1.X), -geometry.Abs(p2.Y-p1.Y)
	sx, sy := sign(p2.X-p1.X), sign(p2.Y-p1.Y)
	e := dx + dy

	x, y := p1.X, p1.Y
	for {
		c.setClipped(x, y, char)
		if x == p2.X && y == p2.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// DrawText renders text starting at (x, y), clipping at the canvas edges.
func (c *MatrixCanvas) DrawText(x, y int, text string) error {
	if y < 0 || y >= c.height {
		return ErrOutOfBounds
	}

	currentX := x
	for _, r := range text {
		width := runewidth.RuneWidth(r)
		if width == 0 {
			continue
		}
		if width == 2 && currentX >= 0 && currentX+1 >= c.width {
			break
		}
		if currentX >= 0 && currentX < c.width {
			c.rows[y][currentX] = r
			if width == 2 {
				c.rows[y][currentX+1] = wideTail
			}
		}
		currentX += width
		if currentX >= c.width {
			break
		}
	}
	return nil
}

// DrawLabel centers text horizontally on x, shifting it left or right so
// it stays inside the canvas when it fits.
func (c *MatrixCanvas) DrawLabel(x, y int, text string) error {
	text = FitText(text, c.width, "…")
	w := MeasureText(text)
	start := x - w/2
	if start+w > c.width {
		start = c.width - w
	}
	if start < 0 {
		start = 0
	}
	return c.DrawText(start, y, text)
}

func (c *MatrixCanvas) inside(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *MatrixCanvas) setClipped(x, y int, char rune) {
	if c.inside(x, y) {
		c.rows[y][x] = char
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
