package render

import (
	"context"
	"time"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// TimerSleeper sleeps on a real timer.
var TimerSleeper Sleeper = timerSleeper{}

// SimClock is a manually advanced clock. Paired with its own Sleep it
// renders frames at exact multiples of the delay, which the GIF exporter and
// tests rely on.
type SimClock struct {
	now time.Time
}

func NewSimClock() *SimClock {
	return &SimClock{now: time.Unix(0, 0)}
}

func (c *SimClock) Now() time.Time { return c.now }

func (c *SimClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Sleep advances the clock by d without blocking.
func (c *SimClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Advance(d)
	return nil
}
