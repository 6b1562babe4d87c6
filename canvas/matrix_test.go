package canvas

import (
	"strings"
	"testing"
	"topo/core"
)

// TestMatrixCanvas_Creation tests canvas creation and initialization.
func TestMatrixCanvas_Creation(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"Small", 10, 5},
		{"Wide", 100, 10},
		{"Tall", 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewMatrixCanvas(tt.width, tt.height)
			if err != nil {
				t.Fatalf("NewMatrixCanvas() error = %v", err)
			}

			w, h := c.Size()
			if w != tt.width || h != tt.height {
				t.Errorf("Size() = (%d, %d), want (%d, %d)", w, h, tt.width, tt.height)
			}
			for y, row := range c.Matrix() {
				if len(row) != tt.width {
					t.Errorf("Row %d width = %d, want %d", y, len(row), tt.width)
				}
				for x, r := range row {
					if r != ' ' {
						t.Errorf("Cell (%d,%d) = %q, want space", x, y, r)
					}
				}
			}
		})
	}

	if _, err := NewMatrixCanvas(0, 5); err != ErrInvalidSize {
		t.Errorf("NewMatrixCanvas(0, 5) error = %v, want %v", err, ErrInvalidSize)
	}
}

func TestMatrixCanvas_GetSet(t *testing.T) {
	c, _ := NewMatrixCanvas(20, 10)

	tests := []struct {
		name  string
		cell  Cell
		valid bool
	}{
		{"Origin", Cell{0, 0}, true},
		{"Bottom right", Cell{19, 9}, true},
		{"Out of bounds X", Cell{20, 5}, false},
		{"Out of bounds Y", Cell{10, 10}, false},
		{"Negative X", Cell{-1, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Set(tt.cell, '#')
			if tt.valid {
				if err != nil {
					t.Fatalf("Set() error = %v", err)
				}
				if got := c.Get(tt.cell); got != '#' {
					t.Errorf("Get() = %q, want '#'", got)
				}
			} else {
				if err != ErrOutOfBounds {
					t.Errorf("Set() error = %v, want %v", err, ErrOutOfBounds)
				}
				if got := c.Get(tt.cell); got != ' ' {
					t.Errorf("Get() out of bounds = %q, want space", got)
				}
			}
		})
	}

	c.Clear()
	if got := c.Get(Cell{0, 0}); got != ' ' {
		t.Errorf("after Clear() Get() = %q, want space", got)
	}
}

func TestMatrixCanvas_DrawLine(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Cell
		want   string
	}{
		{"Horizontal", Cell{0, 0}, Cell{4, 0}, "*****\n     \n     "},
		{"Vertical", Cell{2, 0}, Cell{2, 2}, "  *  \n  *  \n  *  "},
		{"Diagonal", Cell{0, 0}, Cell{2, 2}, "*    \n *   \n  *  "},
		{"Reversed", Cell{4, 2}, Cell{2, 2}, "     \n     \n  ***"},
		{"Clipped", Cell{-3, 1}, Cell{1, 1}, "     \n**   \n     "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := NewMatrixCanvas(5, 3)
			c.DrawLine(tt.p1, tt.p2, '*')
			if got := c.String(); got != tt.want {
				t.Errorf("DrawLine() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestMatrixCanvas_DrawText(t *testing.T) {
	c, _ := NewMatrixCanvas(8, 1)
	if err := c.DrawText(-2, 0, "abcdefghij"); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}
	if got := c.String(); got != "cdefghij" {
		t.Errorf("DrawText() = %q, want %q", got, "cdefghij")
	}
	if err := c.DrawText(0, 3, "x"); err != ErrOutOfBounds {
		t.Errorf("DrawText() off canvas error = %v, want %v", err, ErrOutOfBounds)
	}

	wide, _ := NewMatrixCanvas(4, 1)
	_ = wide.DrawText(0, 0, "山山山")
	if got := wide.String(); got != "山山" {
		t.Errorf("wide DrawText() = %q, want %q", got, "山山")
	}
}

func TestMatrixCanvas_DrawLabel(t *testing.T) {
	c, _ := NewMatrixCanvas(10, 1)
	_ = c.DrawLabel(9, 0, "Loon")
	if got := c.String(); got != "      Loon" {
		t.Errorf("DrawLabel() at right edge = %q", got)
	}

	c.Clear()
	_ = c.DrawLabel(5, 0, "Lake Tecumseh")
	if got := c.String(); got != "Lake Tecu…" {
		t.Errorf("DrawLabel() truncated = %q", got)
	}
}

func TestFitText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"Echo Lake", 20, "Echo Lake"},
		{"Echo Lake", 6, "Echo …"},
		{"Echo Lake", 1, "E"},
		{"Echo Lake", 0, ""},
	}
	for _, tt := range tests {
		if got := FitText(tt.text, tt.width, "…"); got != tt.want {
			t.Errorf("FitText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestRasterize(t *testing.T) {
	r := &core.Result{
		Params: core.Params{Width: 100, Height: 50},
		Levels: []core.Level{
			{Threshold: 0.3, Path: "M 0 10 L 90 10"},
			{Threshold: 0.6, Path: "M 0 30 L 90 30"},
		},
		Streams: []string{"M 50 0 L 50 45"},
		Peaks:   []core.Peak{{X: 10, Y: 40, Height: 0.9, Name: "Hawk Hill"}},
	}

	c, err := Rasterize(r, 10, 5, DefaultStyle())
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	lines := strings.Split(c.String(), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d rows, want 5", len(lines))
	}
	if lines[1][:5] != "....." {
		t.Errorf("lowest level row = %q, want leading dots", lines[1])
	}
	if lines[3][:5] != "@@@@@" {
		t.Errorf("highest level row = %q, want leading @", lines[3])
	}
	if c.Get(Cell{5, 0}) != '~' || c.Get(Cell{5, 2}) != '~' {
		t.Errorf("stream column missing:\n%s", c.String())
	}
	if c.Get(Cell{1, 4}) != '^' {
		t.Errorf("peak marker missing:\n%s", c.String())
	}
	if !strings.HasPrefix(lines[4][3:], "Hawk") {
		t.Errorf("peak label row = %q", lines[4])
	}
}

func TestRasterizeSkipsMalformedPaths(t *testing.T) {
	r := &core.Result{
		Params: core.Params{Width: 10, Height: 10},
		Levels: []core.Level{{Path: "L 1 2"}},
	}
	c, err := Rasterize(r, 5, 5, DefaultStyle())
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	if strings.TrimSpace(c.String()) != "" {
		t.Errorf("expected blank canvas, got:\n%s", c.String())
	}

	if _, err := Rasterize(r, 0, 5, DefaultStyle()); err != ErrInvalidSize {
		t.Errorf("Rasterize() zero size error = %v", err)
	}
}

func TestLevelRune(t *testing.T) {
	ramp := []rune("abc")
	if got := levelRune(ramp, 0, 1); got != 'a' {
		t.Errorf("single level = %q", got)
	}
	if got := levelRune(ramp, 11, 12); got != 'c' {
		t.Errorf("last level = %q", got)
	}
	if got := levelRune(nil, 3, 4); got != '*' {
		t.Errorf("empty ramp = %q", got)
	}
}
