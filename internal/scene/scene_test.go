package scene

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileepajay/sand-hour-glass-timer/internal/hourglass"
)

func testFrame(fraction, angle float64) hourglass.Frame {
	return hourglass.Frame{
		Fraction: fraction,
		Angle:    angle,
		Geometry: hourglass.Geometry{Width: 120, Height: 200},
		SurfaceW: 400,
		SurfaceH: 400,
	}
}

func TestBuildFillLevels(t *testing.T) {
	s := Build(testFrame(0.25, 0), DefaultPalette(), 3)
	require.Len(t, s.Fills, 2)

	top, bottom := s.Fills[0], s.Fills[1]
	assert.Equal(t, Rect{X: -120, Y: -75, W: 240, H: 75}, top.Rect)
	assert.Equal(t, TopChamber(hourglass.Geometry{Width: 120, Height: 200}), top.Clip)
	assert.Equal(t, Rect{X: -120, Y: 75, W: 240, H: 25}, bottom.Rect)
	assert.Len(t, s.Outline, 2)
}

func TestBuildSkipsEmptyChambers(t *testing.T) {
	s := Build(testFrame(0, 0), DefaultPalette(), 3)
	require.Len(t, s.Fills, 1)
	assert.Equal(t, -100.0, s.Fills[0].Rect.Y)

	s = Build(testFrame(1, 0), DefaultPalette(), 3)
	require.Len(t, s.Fills, 1)
	assert.Equal(t, 0.0, s.Fills[0].Rect.Y)
	assert.Equal(t, 100.0, s.Fills[0].Rect.H)
}

func TestClipFillCoversOnlyChamber(t *testing.T) {
	s := Build(testFrame(0.5, 0), DefaultPalette(), 3)
	top := s.Fills[0]

	assert.True(t, top.Covers(Point{0, -10}))
	assert.True(t, top.Rect.Contains(Point{50, -20}))
	assert.False(t, top.Covers(Point{50, -20}), "outside the triangle")
	assert.False(t, top.Covers(Point{0, -80}), "above the sand line")
}

func TestBuildGrainsDrawnBelowNeck(t *testing.T) {
	f := testFrame(0.5, 0)
	f.Grains = []hourglass.Grain{{X: 2, Y: -90}}
	s := Build(f, DefaultPalette(), 3)
	require.Len(t, s.Dots, 1)
	assert.Equal(t, Point{2, 10}, s.Dots[0].Center)
	assert.Equal(t, GrainRadius, s.Dots[0].Radius)
}

func TestSurfaceTransformRoundTrip(t *testing.T) {
	s := Scene{CenterX: 200, CenterY: 150, Angle: math.Pi}
	p := s.ToSurface(Point{10, -20})
	assert.InDelta(t, 190, p.X, 1e-9)
	assert.InDelta(t, 170, p.Y, 1e-9)

	back := s.ToLocal(p)
	assert.InDelta(t, 10, back.X, 1e-9)
	assert.InDelta(t, -20, back.Y, 1e-9)
}

func TestGrainColorStaysNearSand(t *testing.T) {
	p := DefaultPalette()
	base, mid := rgba(p.Sand), p.GrainColor(0)
	assert.InDelta(t, base.R, mid.R, 1)
	assert.InDelta(t, base.G, mid.G, 1)
	assert.InDelta(t, base.B, mid.B, 1)
	dark, light := p.GrainColor(-1), p.GrainColor(1)
	assert.Less(t, int(dark.G), int(light.G))
}

func TestNewPaletteRejectsBadHex(t *testing.T) {
	_, err := NewPalette("sand", DefaultOutline, DefaultBackground)
	assert.Error(t, err)
}

func TestRasterClipsFillToChamber(t *testing.T) {
	p := DefaultPalette()
	sand, bg := rgba(p.Sand), rgba(p.Background)

	s := Build(testFrame(0.5, 0), p, 3)
	img := image.NewRGBA(image.Rect(0, 0, 400, 400))
	NewRaster(400, 400).Draw(&s, img)

	assert.Equal(t, sand, img.RGBAAt(200, 190), "top sand near the neck")
	assert.Equal(t, bg, img.RGBAAt(200, 120), "top chamber above the sand line")
	assert.Equal(t, sand, img.RGBAAt(200, 290), "bottom pile")
	assert.Equal(t, bg, img.RGBAAt(250, 180), "rectangle outside the triangle is clipped")
	assert.Equal(t, bg, img.RGBAAt(260, 270), "bottom rectangle outside the triangle is clipped")
	assert.Equal(t, rgba(p.Outline), img.RGBAAt(200, 100), "outline drawn over the base")
}

func TestRasterFollowsRotation(t *testing.T) {
	p := DefaultPalette()
	s := Build(testFrame(0, math.Pi), p, 3)
	img := image.NewRGBA(image.Rect(0, 0, 400, 400))
	NewRaster(400, 400).Draw(&s, img)

	// The full top chamber now hangs below the neck.
	assert.Equal(t, rgba(p.Sand), img.RGBAAt(200, 250))
	assert.Equal(t, rgba(p.Background), img.RGBAAt(200, 150))
}
