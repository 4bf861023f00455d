package raster

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/fogleman/gg"
)

// Canvas rasterizes frames with anti-aliased circles. Draw calls land on a
// back context; Sync copies it to the presented image only when the frame
// completes.
type Canvas struct {
	back      *gg.Context
	front     *gg.Context
	recording bool
	pal       color.Palette
	frames    []*image.Paletted
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		back:  gg.NewContext(width, height),
		front: gg.NewContextForRGBA(image.NewRGBA(image.Rect(0, 0, width, height))),
	}
}

func (c *Canvas) Width() int  { return c.front.Width() }
func (c *Canvas) Height() int { return c.front.Height() }

func (c *Canvas) Clear(fill color.Color) {
	c.back.SetColor(fill)
	c.back.Clear()
}

func (c *Canvas) DrawCircle(x, y, radius float64, fill color.Color) {
	if radius <= 0 {
		return
	}
	c.back.DrawCircle(x, y, radius)
	c.back.SetColor(fill)
	c.back.Fill()
}

func (c *Canvas) Sync(draw func() error) error {
	if err := draw(); err != nil {
		c.back.ClearPath()
		return err
	}
	c.present()
	return nil
}

func (c *Canvas) present() {
	dst := c.front.Image().(*image.RGBA)
	draw.Draw(dst, dst.Bounds(), c.back.Image(), image.Point{}, draw.Src)
	if c.recording {
		c.frames = append(c.frames, quantize(dst, c.pal))
	}
}

// Record starts keeping a paletted copy of every presented frame.
func (c *Canvas) Record(pal color.Palette) {
	c.recording = true
	c.pal = pal
	c.frames = c.frames[:0]
}

func (c *Canvas) Frames() []*image.Paletted { return c.frames }

// Image returns the last presented frame.
func (c *Canvas) Image() image.Image { return c.front.Image() }

func (c *Canvas) SavePNG(path string) error { return c.front.SavePNG(path) }

func (c *Canvas) EncodePNG(w io.Writer) error { return c.front.EncodePNG(w) }

func quantize(src image.Image, pal color.Palette) *image.Paletted {
	dst := image.NewPaletted(src.Bounds(), pal)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
