package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/tixy/internal/config"
	"github.com/san-kum/tixy/internal/field"
	"github.com/san-kum/tixy/internal/palette"
	"github.com/san-kum/tixy/internal/render"
	"gopkg.in/yaml.v3"
)

// Playlist shows several patterns one after another on the same canvas.
type Playlist struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Loop        bool   `yaml:"loop"`
	Steps       []Step `yaml:"steps"`
}

// Step is one pattern in a playlist. A step ends after Duration seconds of
// animation time or after Frames frames, whichever comes first.
type Step struct {
	Pattern  string  `yaml:"pattern"`
	Theme    string  `yaml:"theme"`
	Duration float64 `yaml:"duration"`
	Frames   int     `yaml:"frames"`
}

// StepResult reports what a step rendered.
type StepResult struct {
	Pattern string
	Frames  int
}

// LoadPlaylist loads a playlist from a YAML file
func LoadPlaylist(path string) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Playlist
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks every step against the registry.
func (p *Playlist) Validate(registry *field.Registry) error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("playlist %q has no steps", p.Name)
	}
	for i, step := range p.Steps {
		if _, err := registry.Get(step.Pattern); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Duration < 0 || step.Frames < 0 {
			return fmt.Errorf("step %d: duration and frames must be non-negative", i+1)
		}
		if step.Duration == 0 && step.Frames == 0 {
			return fmt.Errorf("step %d: needs a duration or a frame count", i+1)
		}
		if step.Theme != "" {
			if _, err := palette.GetTheme(step.Theme); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return nil
}

// Run plays every step on canvas. base supplies the grid and default colors.
// With Loop set it repeats until ctx is cancelled, and the results cover
// only the pass in progress.
func Run(ctx context.Context, p *Playlist, registry *field.Registry, base *config.Config, canvas render.Canvas, opts ...render.Option) ([]StepResult, error) {
	if err := p.Validate(registry); err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(p.Steps))
	for {
		results = results[:0]
		for i, step := range p.Steps {
			render.Logger().Info("playlist step", "n", i+1, "of", len(p.Steps), "pattern", step.Pattern)

			frames, err := runStep(ctx, step, registry, base, canvas, opts)
			results = append(results, StepResult{Pattern: step.Pattern, Frames: frames})
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if !p.Loop {
			return results, nil
		}
	}
}

func runStep(ctx context.Context, step Step, registry *field.Registry, base *config.Config, canvas render.Canvas, opts []render.Option) (int, error) {
	fn, err := registry.Get(step.Pattern)
	if err != nil {
		return 0, err
	}

	cfg := *base
	cfg.Frames = step.Frames
	if step.Theme != "" {
		if err := cfg.ApplyTheme(step.Theme); err != nil {
			return 0, err
		}
	}
	rc, err := cfg.RenderConfig()
	if err != nil {
		return 0, err
	}

	stepCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stepOpts := append([]render.Option{}, opts...)
	if step.Duration > 0 {
		stepOpts = append(stepOpts, render.WithObserver(render.ObserverFunc(func(s render.FrameStats) {
			if s.Time >= step.Duration {
				cancel()
			}
		})))
	}

	r, err := render.New(fn, rc, canvas, stepOpts...)
	if err != nil {
		return 0, err
	}

	err = r.Run(stepCtx)
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		err = nil
	}
	return r.Frames(), err
}
