package render

import (
	"context"
	"image/color"
	"log/slog"
	"time"

	"github.com/san-kum/tixy/internal/grid"
	"github.com/san-kum/tixy/internal/palette"
)

const (
	DefaultDim       = 16
	DefaultMaxRadius = 8.0
	DefaultGap       = 2.0
	DefaultDelay     = 50 * time.Millisecond
)

// Canvas is a drawing surface. All draw calls issued inside Sync must reach
// the screen as one update; if draw returns an error the frame is dropped.
type Canvas interface {
	Clear(fill color.Color)
	DrawCircle(x, y, radius float64, fill color.Color)
	Sync(draw func() error) error
}

// FrameStats summarises one committed frame.
type FrameStats struct {
	Frame    int
	Time     float64
	Duration time.Duration
	Cells    int
	Positive int     // cells drawn with the positive fill
	Mean     float64 // mean clamped value
	Peak     float64 // largest clamped magnitude
}

type Observer interface {
	OnFrame(s FrameStats)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(FrameStats)

func (f ObserverFunc) OnFrame(s FrameStats) { f(s) }

// Clock reports the current time. Elapsed time is taken from differences of
// Now, which keeps the monotonic reading of time.Time.
type Clock interface {
	Now() time.Time
}

// Sleeper pauses between frames and returns ctx.Err() if interrupted.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type Config struct {
	Grid   grid.Config
	Style  palette.Style
	Delay  time.Duration
	Frames int // stop after this many frames; 0 runs until cancelled
}

func DefaultConfig() Config {
	return Config{
		Grid: grid.Config{
			Dim:       DefaultDim,
			MaxRadius: DefaultMaxRadius,
			Gap:       DefaultGap,
		},
		Style: palette.DefaultStyle(),
		Delay: DefaultDelay,
	}
}

type Option func(*Renderer)

func WithClock(c Clock) Option { return func(r *Renderer) { r.clock = c } }

func WithSleeper(s Sleeper) Option { return func(r *Renderer) { r.sleeper = s } }

// WithLogger overrides the package logger for one renderer.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(r *Renderer) { r.observers = append(r.observers, o) }
}
