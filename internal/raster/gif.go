package raster

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
	"time"

	"github.com/san-kum/tixy/internal/palette"
	"github.com/san-kum/tixy/internal/render"
)

var ErrNoFrames = errors.New("raster: no frames recorded")

// StylePalette builds a GIF palette from a style: the three fills plus
// steps blends from the canvas color toward each circle color, which covers
// the anti-aliased edges.
func StylePalette(st palette.Style, steps int) color.Palette {
	pal := color.Palette{st.CanvasFill, st.PositiveFill, st.NegativeFill}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		pal = append(pal, palette.Blend(st.CanvasFill, st.PositiveFill, t))
		pal = append(pal, palette.Blend(st.CanvasFill, st.NegativeFill, t))
	}
	if len(pal) > 256 {
		pal = pal[:256]
	}
	return pal
}

// EncodeGIF writes a looping animation. GIF delays are in hundredths of a
// second; anything shorter is rounded up to one.
func EncodeGIF(w io.Writer, frames []*image.Paletted, delay time.Duration) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	d := int(delay / (10 * time.Millisecond))
	if d < 1 {
		d = 1
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, d)
	}
	return gif.EncodeAll(w, &anim)
}

func SaveGIF(path string, frames []*image.Paletted, delay time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := EncodeGIF(f, frames, delay); err != nil {
		return err
	}
	render.Logger().Info("gif written", "path", path, "frames", len(frames))
	return f.Close()
}
