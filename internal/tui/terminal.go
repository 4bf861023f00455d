package tui

import (
	"bufio"
	"image/color"
	"io"

	"github.com/san-kum/tixy/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	cursorHome  = "\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Terminal streams frames to a writer, redrawing in place. It is the canvas
// behind `tixy run`, for terminals where a full-screen program is unwanted.
type Terminal struct {
	canvas  *viz.Canvas
	out     *bufio.Writer
	color   bool
	started bool
}

func NewTerminal(out io.Writer, pxWidth, pxHeight float64, cols int, useColor bool) *Terminal {
	return &Terminal{
		canvas: viz.NewCanvas(pxWidth, pxHeight, cols),
		out:    bufio.NewWriter(out),
		color:  useColor,
	}
}

func (t *Terminal) Clear(fill color.Color) { t.canvas.Clear(fill) }

func (t *Terminal) DrawCircle(x, y, radius float64, fill color.Color) {
	t.canvas.DrawCircle(x, y, radius, fill)
}

// Sync presents the frame and writes it over the previous one.
func (t *Terminal) Sync(draw func() error) error {
	if err := t.canvas.Sync(draw); err != nil {
		return err
	}
	if !t.started {
		t.out.WriteString(hideCursor + clearScreen)
		t.started = true
	} else {
		t.out.WriteString(cursorHome)
	}
	if t.color {
		t.out.WriteString(t.canvas.String())
	} else {
		t.out.WriteString(t.canvas.Plain())
	}
	return t.out.Flush()
}

// Close restores the cursor.
func (t *Terminal) Close() error {
	if !t.started {
		return nil
	}
	t.started = false
	t.out.WriteString(showCursor)
	return t.out.Flush()
}
