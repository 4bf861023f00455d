package metrics

import "github.com/san-kum/tixy/internal/render"

// FrameRate measures committed frames per second of animation time.
type FrameRate struct {
	name    string
	first   float64
	last    float64
	samples int
}

func NewFrameRate() *FrameRate {
	return &FrameRate{name: "fps"}
}

func (f *FrameRate) Name() string {
	return f.name
}

func (f *FrameRate) OnFrame(s render.FrameStats) {
	if f.samples == 0 {
		f.first = s.Time
	}
	f.last = s.Time
	f.samples++
}

func (f *FrameRate) Value() float64 {
	span := f.last - f.first
	if f.samples < 2 || span <= 0 {
		return 0
	}
	return float64(f.samples-1) / span
}

func (f *FrameRate) Reset() {
	f.first = 0
	f.last = 0
	f.samples = 0
}
