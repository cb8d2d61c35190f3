package scene

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// dotSegments is how many sides a rasterized grain has.
const dotSegments = 8

// Raster paints scenes into memory without a GPU. It is used for snapshots
// and to check the clip-then-fill output pixel by pixel.
type Raster struct {
	z      *vector.Rasterizer
	shape  *image.Alpha
	clip   *image.Alpha
	masked *image.Alpha
}

// NewRaster allocates scratch buffers for a w×h surface.
func NewRaster(w, h int) *Raster {
	b := image.Rect(0, 0, w, h)
	return &Raster{
		z:      vector.NewRasterizer(w, h),
		shape:  image.NewAlpha(b),
		clip:   image.NewAlpha(b),
		masked: image.NewAlpha(b),
	}
}

// Bounds returns the surface rectangle.
func (r *Raster) Bounds() image.Rectangle { return r.shape.Bounds() }

// Draw paints s onto dst, which must have the raster's bounds.
func (r *Raster) Draw(s *Scene, dst *image.RGBA) {
	b := r.Bounds()
	draw.Draw(dst, b, image.NewUniform(s.Background), image.Point{}, draw.Src)

	for _, f := range s.Fills {
		r.drawClipFill(s, f, dst)
	}
	for _, d := range s.Dots {
		r.fill(dst, s.dotPolygon(d), d.Color)
	}
	for _, t := range s.Outline {
		for i := range t {
			a, b := t[i], t[(i+1)%len(t)]
			r.fill(dst, s.linePolygon(a, b, s.OutlineWidth), s.OutlineColor)
		}
	}
}

// drawClipFill rasterizes the rectangle and the clip triangle separately and
// keeps the product of their coverage.
func (r *Raster) drawClipFill(s *Scene, f ClipFill, dst *image.RGBA) {
	corners := f.Rect.Corners()
	r.coverage(r.shape, s.surfacePolygon(corners[:]))
	r.coverage(r.clip, s.surfacePolygon(f.Clip[:]))
	for i, a := range r.shape.Pix {
		r.masked.Pix[i] = uint8(uint16(a) * uint16(r.clip.Pix[i]) / 0xff)
	}
	draw.DrawMask(dst, r.Bounds(), image.NewUniform(f.Color), image.Point{}, r.masked, image.Point{}, draw.Over)
}

func (r *Raster) fill(dst *image.RGBA, poly []Point, c color.RGBA) {
	r.coverage(r.shape, poly)
	draw.DrawMask(dst, r.Bounds(), image.NewUniform(c), image.Point{}, r.shape, image.Point{}, draw.Over)
}

// coverage replaces dst with the anti-aliased coverage of poly.
func (r *Raster) coverage(dst *image.Alpha, poly []Point) {
	clear(dst.Pix)
	if len(poly) < 3 {
		return
	}
	b := dst.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		r.z.LineTo(float32(p.X), float32(p.Y))
	}
	r.z.ClosePath()
	r.z.Draw(dst, b, image.Opaque, image.Point{})
}

func (s *Scene) surfacePolygon(local []Point) []Point {
	out := make([]Point, len(local))
	for i, p := range local {
		out[i] = s.ToSurface(p)
	}
	return out
}

func (s *Scene) dotPolygon(d Dot) []Point {
	c := s.ToSurface(d.Center)
	out := make([]Point, dotSegments)
	for i := range out {
		a := 2 * math.Pi * float64(i) / dotSegments
		out[i] = Point{X: c.X + d.Radius*math.Cos(a), Y: c.Y + d.Radius*math.Sin(a)}
	}
	return out
}

// linePolygon is the quad covering a stroke of width w from a to b.
func (s *Scene) linePolygon(a, b Point, w float64) []Point {
	a, b = s.ToSurface(a), s.ToSurface(b)
	dx, dy := b.X-a.X, b.Y-a.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return nil
	}
	ox, oy := -dy/n*w/2, dx/n*w/2
	return []Point{
		{a.X + ox, a.Y + oy},
		{b.X + ox, b.Y + oy},
		{b.X - ox, b.Y - oy},
		{a.X - ox, a.Y - oy},
	}
}
