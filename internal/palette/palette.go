package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var ErrUnknownColor = errors.New("palette: unknown color")

// Style holds the three fills used to paint a frame.
type Style struct {
	CanvasFill   color.Color
	PositiveFill color.Color
	NegativeFill color.Color
}

// DefaultStyle matches the classic look: white and red circles on black.
func DefaultStyle() Style {
	return Classic.Style()
}

// Parse resolves a color token. Tokens are CSS color names ("black",
// "white") or hex values ("#FE2244", "#fff").
func Parse(token string) (color.Color, error) {
	s := strings.ToLower(strings.TrimSpace(token))
	if s == "" {
		return nil, fmt.Errorf("%w: empty token", ErrUnknownColor)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, token)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// ParseStyle builds a Style from three color tokens.
func ParseStyle(canvasFill, positiveFill, negativeFill string) (Style, error) {
	var st Style
	var err error
	if st.CanvasFill, err = Parse(canvasFill); err != nil {
		return Style{}, fmt.Errorf("canvas fill: %w", err)
	}
	if st.PositiveFill, err = Parse(positiveFill); err != nil {
		return Style{}, fmt.Errorf("positive fill: %w", err)
	}
	if st.NegativeFill, err = Parse(negativeFill); err != nil {
		return Style{}, fmt.Errorf("negative fill: %w", err)
	}
	return st, nil
}

// Hex formats c as #rrggbb, ignoring alpha.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(opaque(c))
	return cf.Hex()
}

// Terminal converts c into a lipgloss color.
func Terminal(c color.Color) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}

// Blend mixes a and b in Lab space; t=0 is a, t=1 is b.
func Blend(a, b color.Color, t float64) color.Color {
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 0xff}
}

// opaque un-premultiplies c. colorful.MakeColor rejects zero alpha.
func opaque(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return color.Black
	}
	if a == 0xffff {
		return c
	}
	return color.RGBA64{R: uint16(r * 0xffff / a), G: uint16(g * 0xffff / a), B: uint16(b * 0xffff / a), A: 0xffff}
}
