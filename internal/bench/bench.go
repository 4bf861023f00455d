// Package bench measures how fast patterns render offscreen.
package bench

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/san-kum/tixy/internal/field"
	"github.com/san-kum/tixy/internal/metrics"
	"github.com/san-kum/tixy/internal/raster"
	"github.com/san-kum/tixy/internal/render"
)

// DefaultFrames is used when the config has no frame limit.
const DefaultFrames = 500

// Result summarizes one benchmarked pattern.
type Result struct {
	Pattern string             `json:"pattern"`
	Dim     int                `json:"dim"`
	Frames  int                `json:"frames"`
	Total   time.Duration      `json:"total_ns"`
	MaxMs   float64            `json:"max_ms"`
	Metrics map[string]float64 `json:"metrics"`
	FrameMs []float64          `json:"frame_ms"`
}

// Run renders cfg.Frames frames of fn onto a raster canvas as fast as
// possible. The delay is ignored.
func Run(ctx context.Context, name string, fn field.Func, cfg render.Config) (*Result, error) {
	if cfg.Frames == 0 {
		cfg.Frames = DefaultFrames
	}
	cfg.Delay = 0

	size := cfg.Grid.Size()
	canvas := raster.NewCanvas(size, size)
	ms := metrics.Defaults(cfg.Frames)

	r, err := render.New(fn, cfg, canvas)
	if err != nil {
		return nil, err
	}
	var frameTime *metrics.FrameTime
	for _, m := range ms {
		r.AddObserver(m)
		if ft, ok := m.(*metrics.FrameTime); ok {
			frameTime = ft
		}
	}

	start := time.Now()
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	total := time.Since(start)

	res := &Result{
		Pattern: name,
		Dim:     cfg.Grid.Dim,
		Frames:  r.Frames(),
		Total:   total,
		MaxMs:   frameTime.Max(),
		Metrics: make(map[string]float64, len(ms)),
		FrameMs: frameTime.History(),
	}
	for _, m := range ms {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}

// Suite benchmarks several patterns concurrently, one goroutine per pattern.
type Suite struct {
	registry *field.Registry
	names    []string
}

func NewSuite(registry *field.Registry, names ...string) *Suite {
	if len(names) == 0 {
		names = registry.Names()
	}
	return &Suite{registry: registry, names: names}
}

// Run returns results in the order the patterns were given. The first
// error wins.
func (s *Suite) Run(ctx context.Context, cfg render.Config) ([]*Result, error) {
	fns := make([]field.Func, len(s.names))
	for i, name := range s.names {
		fn, err := s.registry.Get(name)
		if err != nil {
			return nil, err
		}
		fns[i] = fn
	}

	results := make([]*Result, len(s.names))
	errs := make([]error, len(s.names))

	var wg sync.WaitGroup
	for i := range s.names {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = Run(ctx, s.names[idx], fns[idx], cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
