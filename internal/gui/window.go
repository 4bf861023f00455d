package gui

import (
	"errors"
	"image/color"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/tixy/internal/render"
)

// ErrWindowClosed is returned from Sync once the user closes the window.
var ErrWindowClosed = errors.New("gui: window closed")

type circle struct {
	center rl.Vector2
	radius float32
	fill   rl.Color
}

// batch collects one frame's draw calls so nothing reaches the GPU unless
// the whole frame succeeds.
type batch struct {
	bg      rl.Color
	circles []circle
}

func (b *batch) reset(bg rl.Color) {
	b.bg = bg
	b.circles = b.circles[:0]
}

func (b *batch) add(x, y, radius float64, fill rl.Color) {
	if radius <= 0 {
		return
	}
	b.circles = append(b.circles, circle{
		center: rl.NewVector2(float32(x), float32(y)),
		radius: float32(radius),
		fill:   fill,
	})
}

func toColor(c color.Color) rl.Color {
	r, g, b, a := c.RGBA()
	return rl.NewColor(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
}

// raylib calls must come from the main OS thread.
func init() {
	runtime.LockOSThread()
}

// Window is a raylib window sized to the grid. Only one may be open.
type Window struct {
	frame batch
}

// Open creates the window. Close must be called from the same goroutine.
func Open(width, height int, title string) *Window {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetExitKey(rl.KeyEscape)
	render.Logger().Info("window opened", "width", width, "height", height)
	return &Window{}
}

func (w *Window) Clear(fill color.Color) {
	w.frame.reset(toColor(fill))
}

func (w *Window) DrawCircle(x, y, radius float64, fill color.Color) {
	w.frame.add(x, y, radius, toColor(fill))
}

// Sync draws the batched frame between BeginDrawing and EndDrawing, which
// swaps buffers once.
func (w *Window) Sync(draw func() error) error {
	if rl.WindowShouldClose() {
		return ErrWindowClosed
	}
	w.frame.reset(rl.Black)
	if err := draw(); err != nil {
		return err
	}

	rl.BeginDrawing()
	rl.ClearBackground(w.frame.bg)
	for _, c := range w.frame.circles {
		rl.DrawCircleV(c.center, c.radius, c.fill)
	}
	rl.EndDrawing()
	return nil
}

func (w *Window) Close() {
	rl.CloseWindow()
	render.Logger().Info("window closed")
}
