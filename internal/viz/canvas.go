package viz

import (
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/tixy/internal/palette"
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

const blank = 0x2800

type buffer struct {
	grid  [][]rune
	fills [][]color.Color
	bg    color.Color
}

func newBuffer(w, h int) *buffer {
	b := &buffer{
		grid:  make([][]rune, h),
		fills: make([][]color.Color, h),
		bg:    color.Black,
	}
	for i := range b.grid {
		b.grid[i] = make([]rune, w)
		b.fills[i] = make([]color.Color, w)
	}
	b.clear(color.Black)
	return b
}

func (b *buffer) clear(bg color.Color) {
	b.bg = bg
	for i := range b.grid {
		for j := range b.grid[i] {
			b.grid[i][j] = blank
			b.fills[i][j] = nil
		}
	}
}

// Canvas draws filled circles as Braille dots. Coordinates passed to
// DrawCircle are in pixels; Scale pixels map to one dot.
//
// Drawing goes to a back buffer; Sync swaps it to the front in one step so
// String never shows a partial frame.
type Canvas struct {
	Width, Height int // in terminal cells
	Scale         float64

	mu    sync.RWMutex
	front *buffer
	back  *buffer
}

// NewCanvas sizes a canvas so a pxWidth x pxHeight image spans cols
// terminal columns.
func NewCanvas(pxWidth, pxHeight float64, cols int) *Canvas {
	if cols < 1 {
		cols = 1
	}
	scale := pxWidth / float64(cols*2)
	if scale <= 0 {
		scale = 1
	}
	rows := int(math.Ceil(pxHeight / scale / 4))
	if rows < 1 {
		rows = 1
	}
	return &Canvas{
		Width:  cols,
		Height: rows,
		Scale:  scale,
		front:  newBuffer(cols, rows),
		back:   newBuffer(cols, rows),
	}
}

// Set lights a dot at (x, y) in dot coordinates.
// The canvas size in dots is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, fill color.Color) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.back.grid[row][col] |= rune(pixelMap[subY][subX])
	c.back.fills[row][col] = fill
}

// Clear resets the back buffer to an empty canvas of the given color.
func (c *Canvas) Clear(fill color.Color) {
	c.back.clear(fill)
}

// DrawCircle lights every dot whose center lies inside the circle.
func (c *Canvas) DrawCircle(x, y, radius float64, fill color.Color) {
	if radius <= 0 {
		return
	}
	x0 := int(math.Floor((x - radius) / c.Scale))
	x1 := int(math.Ceil((x + radius) / c.Scale))
	y0 := int(math.Floor((y - radius) / c.Scale))
	y1 := int(math.Ceil((y + radius) / c.Scale))
	r2 := radius * radius

	for dy := y0; dy <= y1; dy++ {
		py := (float64(dy)+0.5)*c.Scale - y
		for dx := x0; dx <= x1; dx++ {
			px := (float64(dx)+0.5)*c.Scale - x
			if px*px+py*py <= r2 {
				c.Set(dx, dy, fill)
			}
		}
	}
}

// Sync runs draw against the back buffer and presents it if draw succeeds.
func (c *Canvas) Sync(draw func() error) error {
	if err := draw(); err != nil {
		return err
	}
	c.mu.Lock()
	c.front, c.back = c.back, c.front
	c.mu.Unlock()
	return nil
}

// Dots returns the presented frame as rows of Braille runes.
func (c *Canvas) Dots() [][]rune {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([][]rune, len(c.front.grid))
	for i, row := range c.front.grid {
		out[i] = append([]rune(nil), row...)
	}
	return out
}

// Plain renders the presented frame without colors.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.Dots() {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// String renders the presented frame with each cell colored by the last
// circle drawn into it.
func (c *Canvas) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bg := palette.Terminal(c.front.bg)
	var b strings.Builder
	for i, row := range c.front.grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && sameFill(c.front.fills[i][j], c.front.fills[i][start]) {
				continue
			}
			st := lipgloss.NewStyle().Background(bg)
			if f := c.front.fills[i][start]; f != nil {
				st = st.Foreground(palette.Terminal(f))
			}
			b.WriteString(st.Render(string(row[start:j])))
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sameFill(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}
