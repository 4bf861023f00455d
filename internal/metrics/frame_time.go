package metrics

import (
	"time"

	"github.com/san-kum/tixy/internal/render"
)

// FrameTime tracks how long frames take to draw, in milliseconds.
type FrameTime struct {
	name     string
	sum      float64
	max      float64
	samples  int
	capacity int
	history  []float64
}

func NewFrameTime(capacity int) *FrameTime {
	return &FrameTime{
		name:     "frame_ms",
		capacity: capacity,
		history:  make([]float64, 0, capacity),
	}
}

func (f *FrameTime) Name() string {
	return f.name
}

func (f *FrameTime) OnFrame(s render.FrameStats) {
	ms := float64(s.Duration) / float64(time.Millisecond)
	f.sum += ms
	f.samples++
	if ms > f.max {
		f.max = ms
	}
	if f.capacity <= 0 {
		return
	}
	if len(f.history) == f.capacity {
		f.history = f.history[1:]
	}
	f.history = append(f.history, ms)
}

// Value is the mean frame time.
func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return f.sum / float64(f.samples)
}

func (f *FrameTime) Max() float64 { return f.max }

// History returns the most recent frame times, oldest first.
func (f *FrameTime) History() []float64 {
	out := make([]float64, len(f.history))
	copy(out, f.history)
	return out
}

func (f *FrameTime) Reset() {
	f.sum = 0
	f.max = 0
	f.samples = 0
	f.history = f.history[:0]
}
