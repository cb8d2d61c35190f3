package scene

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Default colors of the classic look.
const (
	DefaultSand       = "#FFC966"
	DefaultOutline    = "#333333"
	DefaultBackground = "#F4EFE6"
)

// grainJitter is how far (in HSLuv lightness) a grain may stray from the
// sand color.
const grainJitter = 0.08

// Palette holds the colors a scene is painted with.
type Palette struct {
	Sand       colorful.Color
	Outline    colorful.Color
	Background colorful.Color
}

// NewPalette parses hex colors such as "#FFC966".
func NewPalette(sand, outline, background string) (Palette, error) {
	var p Palette
	var err error
	if p.Sand, err = colorful.Hex(sand); err != nil {
		return Palette{}, fmt.Errorf("sand color %q: %w", sand, err)
	}
	if p.Outline, err = colorful.Hex(outline); err != nil {
		return Palette{}, fmt.Errorf("outline color %q: %w", outline, err)
	}
	if p.Background, err = colorful.Hex(background); err != nil {
		return Palette{}, fmt.Errorf("background color %q: %w", background, err)
	}
	return p, nil
}

// DefaultPalette returns the classic colors.
func DefaultPalette() Palette {
	p, err := NewPalette(DefaultSand, DefaultOutline, DefaultBackground)
	if err != nil {
		panic(err)
	}
	return p
}

// GrainColor shades the sand color by tint in [-1, 1], keeping hue and
// saturation in HSLuv space so grains read as the same sand.
func (p Palette) GrainColor(tint float64) color.RGBA {
	h, s, l := p.Sand.HSLuv()
	l += tint * grainJitter
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	return rgba(colorful.HSLuv(h, s, l).Clamped())
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
