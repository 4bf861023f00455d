package export

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/san-kum/tixy/internal/palette"
)

// SVGCanvas renders each frame as a standalone SVG document.
type SVGCanvas struct {
	Width, Height float64

	sb      strings.Builder
	bg      string
	pending int
	circles int
	last    string
}

func NewSVGCanvas(width, height float64) *SVGCanvas {
	return &SVGCanvas{Width: width, Height: height}
}

func (c *SVGCanvas) Clear(fill color.Color) {
	c.sb.Reset()
	c.bg = palette.Hex(fill)
	c.pending = 0
}

func (c *SVGCanvas) DrawCircle(x, y, radius float64, fill color.Color) {
	if radius <= 0 {
		return
	}
	c.sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"/>
`, x, y, radius, palette.Hex(fill)))
	c.pending++
}

// Sync wraps the frame's circles in an SVG document. A failed frame leaves
// the previous document in place.
func (c *SVGCanvas) Sync(draw func() error) error {
	c.sb.Reset()
	c.bg = "#000000"
	c.pending = 0
	if err := draw(); err != nil {
		return err
	}

	var doc strings.Builder
	doc.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, c.Width, c.Height, c.Width, c.Height, c.bg))
	doc.WriteString(c.sb.String())
	doc.WriteString("</svg>\n")
	c.last = doc.String()
	c.circles = c.pending
	return nil
}

// String returns the last committed document.
func (c *SVGCanvas) String() string {
	return c.last
}

// Circles is the number of visible circles in the last committed document.
func (c *SVGCanvas) Circles() int {
	return c.circles
}

func (c *SVGCanvas) Save(path string) error {
	if c.last == "" {
		return fmt.Errorf("no frame to save")
	}
	return os.WriteFile(path, []byte(c.last), 0644)
}
