package metrics

import "github.com/san-kum/tixy/internal/render"

// Coverage is the mean share of cells drawn with the positive fill.
type Coverage struct {
	name    string
	sum     float64
	samples int
}

func NewCoverage() *Coverage {
	return &Coverage{name: "coverage"}
}

func (c *Coverage) Name() string {
	return c.name
}

func (c *Coverage) OnFrame(s render.FrameStats) {
	if s.Cells == 0 {
		return
	}
	c.sum += float64(s.Positive) / float64(s.Cells)
	c.samples++
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.sum = 0
	c.samples = 0
}
