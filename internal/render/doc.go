// Package render drives the frame loop that turns a scalar field into
// circles on a canvas.
//
// The package defines the engine types:
//
//   - [Renderer]: evaluates a [field.Func] over a grid once per frame
//   - [Canvas]: drawing surface contract implemented by backend packages
//   - [Observer]: per-frame statistics hook
//   - [Clock] and [Sleeper]: injectable timing for deterministic tests
//
// # Example
//
//	r, err := render.New(fn, render.DefaultConfig(), canvas)
//	if err != nil {
//		return err
//	}
//	err = r.Run(ctx)
//
// # Frame pacing
//
// Each frame is committed through [Canvas.Sync] so the previous image is
// replaced in one visible update. After a frame the renderer sleeps for
// [Config.Delay]; cancelling the context interrupts the sleep.
//
// # Thread Safety
//
// A Renderer is driven by one goroutine. Separate instances share nothing
// and may run concurrently.
package render
