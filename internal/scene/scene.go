// Package scene turns a simulation frame into a backend-neutral draw list.
//
// Chamber fills are described as a rectangle clipped to the chamber's
// triangle rather than as the exact trapezoid of sand; backends implement
// the clip (an offscreen mask on ebiten, coverage multiplication in the
// software raster).
package scene

import (
	"image/color"
	"math"

	"github.com/dileepajay/sand-hour-glass-timer/internal/hourglass"
)

// GrainRadius is the drawn radius of a falling grain.
const GrainRadius = 1.0

type Point struct{ X, Y float64 }

type Triangle [3]Point

// Contains reports whether p lies inside t or on its boundary.
func (t Triangle) Contains(p Point) bool {
	d1 := cross(t[0], t[1], p)
	d2 := cross(t[1], t[2], p)
	d3 := cross(t[2], t[0], p)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// Rect is an axis-aligned rectangle in chamber-local coordinates.
type Rect struct{ X, Y, W, H float64 }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Corners lists the corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
}

// ClipFill paints Rect, but only where it overlaps Clip.
type ClipFill struct {
	Clip  Triangle
	Rect  Rect
	Color color.RGBA
}

// Covers reports whether p is painted by the fill.
func (f ClipFill) Covers(p Point) bool {
	return f.Clip.Contains(p) && f.Rect.Contains(p)
}

type Dot struct {
	Center Point
	Radius float64
	Color  color.RGBA
}

// Scene is one frame's draw list. Shapes are in chamber-local coordinates
// with the apex at the origin; ToSurface maps them onto the surface.
type Scene struct {
	CenterX, CenterY float64
	Angle            float64
	Background       color.RGBA

	// Painted in order: fills, dots, outline.
	Fills        []ClipFill
	Dots         []Dot
	Outline      []Triangle
	OutlineColor color.RGBA
	OutlineWidth float64
}

// ToSurface rotates p by the scene angle and moves it to the surface center.
func (s *Scene) ToSurface(p Point) Point {
	sin, cos := math.Sincos(s.Angle)
	return Point{
		X: s.CenterX + p.X*cos - p.Y*sin,
		Y: s.CenterY + p.X*sin + p.Y*cos,
	}
}

// ToLocal is the inverse of ToSurface.
func (s *Scene) ToLocal(p Point) Point {
	sin, cos := math.Sincos(s.Angle)
	x, y := p.X-s.CenterX, p.Y-s.CenterY
	return Point{X: x*cos + y*sin, Y: -x*sin + y*cos}
}

// TopChamber is the upper triangle: apex at the origin, base at -H/2.
func TopChamber(g hourglass.Geometry) Triangle {
	return Triangle{
		{0, 0},
		{-g.HalfWidth(), -g.Half()},
		{g.HalfWidth(), -g.Half()},
	}
}

// BottomChamber is the lower triangle: apex at the origin, base at +H/2.
func BottomChamber(g hourglass.Geometry) Triangle {
	return Triangle{
		{0, 0},
		{g.HalfWidth(), g.Half()},
		{-g.HalfWidth(), g.Half()},
	}
}

// Build lays out the frame. It keeps no state between calls.
func Build(f hourglass.Frame, p Palette, outlineWidth float64) Scene {
	g := f.Geometry
	sand := rgba(p.Sand)
	s := Scene{
		CenterX:      float64(f.SurfaceW) / 2,
		CenterY:      float64(f.SurfaceH) / 2,
		Angle:        f.Angle,
		Background:   rgba(p.Background),
		OutlineColor: rgba(p.Outline),
		OutlineWidth: outlineWidth,
	}

	if top := (1 - f.Fraction) * g.Half(); top > 0 {
		s.Fills = append(s.Fills, ClipFill{
			Clip:  TopChamber(g),
			Rect:  Rect{X: -g.Width, Y: -top, W: g.Width * 2, H: top},
			Color: sand,
		})
	}
	if f.Fraction > 0 {
		bottom := f.Fraction * g.Half()
		s.Fills = append(s.Fills, ClipFill{
			Clip:  BottomChamber(g),
			Rect:  Rect{X: -g.Width, Y: g.Half() - bottom, W: g.Width * 2, H: bottom},
			Color: sand,
		})
	}

	if len(f.Grains) > 0 {
		s.Dots = make([]Dot, 0, len(f.Grains))
		for _, gr := range f.Grains {
			s.Dots = append(s.Dots, Dot{
				Center: Point{X: gr.X, Y: gr.Y + g.Half()},
				Radius: GrainRadius,
				Color:  p.GrainColor(gr.Tint),
			})
		}
	}

	s.Outline = []Triangle{TopChamber(g), BottomChamber(g)}
	return s
}
