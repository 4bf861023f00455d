package render_test

import (
	"image/color"
)

type circle struct {
	X, Y, Radius float64
	Fill         color.Color
}

type frame struct {
	Clear   color.Color
	Circles []circle
}

// recordingCanvas keeps every committed frame and drops failed ones.
type recordingCanvas struct {
	frames  []frame
	pending *frame
	syncs   int
}

func (c *recordingCanvas) Clear(fill color.Color) {
	c.pending.Clear = fill
	c.pending.Circles = c.pending.Circles[:0]
}

func (c *recordingCanvas) DrawCircle(x, y, radius float64, fill color.Color) {
	c.pending.Circles = append(c.pending.Circles, circle{X: x, Y: y, Radius: radius, Fill: fill})
}

func (c *recordingCanvas) Sync(draw func() error) error {
	c.syncs++
	c.pending = &frame{}
	defer func() { c.pending = nil }()
	if err := draw(); err != nil {
		return err
	}
	c.frames = append(c.frames, *c.pending)
	return nil
}
