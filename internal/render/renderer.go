package render

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/tixy/internal/field"
	"github.com/san-kum/tixy/internal/grid"
	"github.com/san-kum/tixy/internal/palette"
)

type Renderer struct {
	fn        field.Func
	cfg       Config
	canvas    Canvas
	clock     Clock
	sleeper   Sleeper
	observers []Observer
	logger    *slog.Logger
	start     time.Time
	frame     int
}

func New(fn field.Func, cfg Config, canvas Canvas, opts ...Option) (*Renderer, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: nil field function", ErrInvalidConfig)
	}
	if canvas == nil {
		return nil, fmt.Errorf("%w: nil canvas", ErrInvalidConfig)
	}
	r := &Renderer{
		fn:        fn,
		cfg:       cfg,
		canvas:    canvas,
		clock:     SystemClock,
		sleeper:   TimerSleeper,
		observers: make([]Observer, 0),
		logger:    Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.start = r.clock.Now()
	return r, nil
}

func validateConfig(cfg Config) error {
	if err := cfg.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Delay < 0 {
		return fmt.Errorf("%w: delay must be non-negative, got %v", ErrInvalidConfig, cfg.Delay)
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("%w: frames must be non-negative, got %d", ErrInvalidConfig, cfg.Frames)
	}
	if cfg.Style.CanvasFill == nil || cfg.Style.PositiveFill == nil || cfg.Style.NegativeFill == nil {
		return fmt.Errorf("%w: style has an unset fill", ErrInvalidConfig)
	}
	return nil
}

func (r *Renderer) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Renderer) Config() Config { return r.cfg }

// Frames returns the number of frames committed so far.
func (r *Renderer) Frames() int { return r.frame }

// Reset restarts the animation clock at zero.
func (r *Renderer) Reset() { r.start = r.clock.Now() }

// Elapsed returns seconds since the last Reset.
func (r *Renderer) Elapsed() float64 {
	return r.clock.Now().Sub(r.start).Seconds()
}

// Run renders frames until ctx is cancelled, the frame limit is reached or a
// frame fails. Cancellation returns ctx.Err().
func (r *Renderer) Run(ctx context.Context) error {
	r.Reset()
	log := r.logger
	log.Info("render loop started", "dim", r.cfg.Grid.Dim, "delay", r.cfg.Delay, "frames", r.cfg.Frames)

	for {
		select {
		case <-ctx.Done():
			log.Info("render loop stopped", "frames", r.frame, "reason", ctx.Err())
			return ctx.Err()
		default:
		}

		if err := r.Frame(r.Elapsed()); err != nil {
			log.Error("render loop aborted", "frames", r.frame, "err", err)
			return err
		}

		if r.cfg.Frames > 0 && r.frame >= r.cfg.Frames {
			log.Info("render loop finished", "frames", r.frame)
			return nil
		}

		if err := r.sleeper.Sleep(ctx, r.cfg.Delay); err != nil {
			log.Info("render loop stopped", "frames", r.frame, "reason", err)
			return err
		}
	}
}

// Frame renders and commits a single frame at time t.
func (r *Renderer) Frame(t float64) error {
	began := r.clock.Now()
	stats := FrameStats{Frame: r.frame, Time: t}

	if err := r.canvas.Sync(func() error { return r.draw(t, &stats) }); err != nil {
		return err
	}

	r.frame++
	stats.Duration = r.clock.Now().Sub(began)
	r.logger.Debug("frame", "n", stats.Frame, "t", t, "took", stats.Duration, "positive", stats.Positive)

	for _, obs := range r.observers {
		obs.OnFrame(stats)
	}
	return nil
}

func (r *Renderer) draw(t float64, stats *FrameStats) error {
	g := r.cfg.Grid
	r.canvas.Clear(r.cfg.Style.CanvasFill)

	n := g.Cells()
	sum := 0.0
	for i := 0; i < n; i++ {
		cell := g.Cell(i)
		v, err := r.eval(t, cell)
		if err != nil {
			return err
		}

		v = Clamp(v)
		radius := v * g.MaxRadius
		fill := Fill(r.cfg.Style, radius)
		cx, cy := g.Center(cell)
		r.canvas.DrawCircle(cx, cy, math.Abs(radius), fill)

		sum += v
		if radius > 0 {
			stats.Positive++
		}
		if a := math.Abs(v); a > stats.Peak {
			stats.Peak = a
		}
	}

	stats.Cells = n
	if n > 0 {
		stats.Mean = sum / float64(n)
	}
	return nil
}

func (r *Renderer) eval(t float64, cell grid.Cell) (v float64, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &FieldError{Frame: r.frame, Time: t, Cell: cell, Value: rec}
		}
	}()
	return r.fn(t, cell.Index, cell.X, cell.Y), nil
}

// Clamp restricts v to [-1, 1]. NaN clamps to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// Radius converts a raw field value to a signed radius.
func Radius(v, maxRadius float64) float64 {
	return Clamp(v) * maxRadius
}

// Fill picks the circle color for a signed radius. Zero counts as negative.
func Fill(st palette.Style, radius float64) color.Color {
	if radius > 0 {
		return st.PositiveFill
	}
	return st.NegativeFill
}
