package game

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/dileepajay/sand-hour-glass-timer/internal/scene"
)

const (
	clockScale = 4.0
	clockPop   = 0.15
	barHeight  = 18
	barMargin  = 20
)

var clockFace = text.NewGoXFace(basicfont.Face7x13)

// maskLayers are the offscreen images used to clip a fill to its chamber.
type maskLayers struct {
	fill  *ebiten.Image
	mask  *ebiten.Image
	white *ebiten.Image
}

func (l *maskLayers) ensure(w, h int) {
	if l.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		l.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	if l.fill != nil && l.fill.Bounds().Dx() == w && l.fill.Bounds().Dy() == h {
		return
	}
	if l.fill != nil {
		l.fill.Deallocate()
		l.mask.Deallocate()
	}
	l.fill = ebiten.NewImage(w, h)
	l.mask = ebiten.NewImage(w, h)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.sc = scene.Build(g.frame, g.palette, g.cfg.Config().Sand.OutlineWidth)
	b := screen.Bounds()
	g.layers.ensure(b.Dx(), b.Dy())

	g.drawBackground(screen)
	g.drawScene(screen, &g.sc)
	g.drawClock(screen)
	g.drawProgressBar(screen)
	g.drawButtons(screen)

	// Draw help
	var status string
	switch {
	case g.frame.Flipping:
		status = "Flipping..."
	case g.frame.Remaining == 0:
		status = "Time's up - R to flip, S to start again"
	case g.frame.Paused:
		status = "Paused - Space to run, R to flip"
	default:
		status = "Running - Space to pause, R to flip"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	b := screen.Bounds()
	base := g.palette.Background
	shade := colorful.Color{R: base.R * 0.85, G: base.G * 0.85, B: base.B * 0.85}
	const band = 4
	for y := 0; y < b.Dy(); y += band {
		ratio := float64(y) / float64(b.Dy())
		c := base.BlendLab(shade, ratio)
		vector.DrawFilledRect(screen, 0, float32(y), float32(b.Dx()), band, c, false)
	}
}

// drawScene paints fills, grains and the outline in that order.
func (g *Game) drawScene(screen *ebiten.Image, sc *scene.Scene) {
	for _, f := range sc.Fills {
		g.drawClipFill(screen, sc, f)
	}
	for _, d := range sc.Dots {
		c := sc.ToSurface(d.Center)
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(d.Radius), d.Color, true)
	}
	for _, t := range sc.Outline {
		for i := range t {
			a, b := sc.ToSurface(t[i]), sc.ToSurface(t[(i+1)%len(t)])
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
				float32(sc.OutlineWidth), sc.OutlineColor, true)
		}
	}
}

// drawClipFill paints the fill rectangle on an offscreen layer, keeps only
// the pixels the chamber mask covers, and composites the result.
func (g *Game) drawClipFill(screen *ebiten.Image, sc *scene.Scene, f scene.ClipFill) {
	l := &g.layers
	l.fill.Clear()
	l.mask.Clear()

	corners := f.Rect.Corners()
	l.fillPolygon(l.fill, sc, corners[:], f.Color)
	l.fillPolygon(l.mask, sc, f.Clip[:], color.White)

	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendDestinationIn
	l.fill.DrawImage(l.mask, op)
	screen.DrawImage(l.fill, nil)
}

func (l *maskLayers) fillPolygon(dst *ebiten.Image, sc *scene.Scene, pts []scene.Point, clr color.Color) {
	var path vector.Path
	for i, p := range pts {
		q := sc.ToSurface(p)
		if i == 0 {
			path.MoveTo(float32(q.X), float32(q.Y))
			continue
		}
		path.LineTo(float32(q.X), float32(q.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, gr, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(gr) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	dst.DrawTriangles(vs, is, l.white, op)
}

// drawClock shows the remaining time under the hourglass, popping briefly
// each time the second changes.
func (g *Game) drawClock(screen *ebiten.Image) {
	b := screen.Bounds()
	s := FormatClock(g.frame.Seconds)
	scale := clockScale * (1 + clockPop*g.pop)
	w, h := text.Measure(s, clockFace, 0)

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(b.Dx())/2-w*scale/2, float64(b.Dy())-barMargin*3-barHeight-h*scale)
	op.ColorScale.ScaleWithColor(g.sc.OutlineColor)
	text.Draw(screen, s, clockFace, op)
}

// drawProgressBar shows how much sand has run, with elapsed and total time.
func (g *Game) drawProgressBar(screen *ebiten.Image) {
	b := screen.Bounds()
	barY := b.Dy() - barMargin - barHeight
	barWidth := b.Dx() - 2*barMargin
	barX := barMargin
	if barWidth <= 0 || g.frame.Total <= 0 {
		return
	}

	progress := clamp01(g.frame.Fraction)
	outline := g.sc.OutlineColor

	// Draw background
	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), barHeight, color.RGBA{R: 0, G: 0, B: 0, A: 30}, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barWidth), barHeight, 2, outline, false)

	// Draw progress fill
	if progress > 0 {
		fillWidth := progress * float64(barWidth)
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(fillWidth), barHeight, g.palette.Sand, false)
	}

	// Draw time labels
	elapsed := g.frame.Total - g.frame.Remaining
	ebitenutil.DebugPrintAt(screen, formatDuration(elapsed), barX, barY-16)
	total := formatDuration(g.frame.Total)
	ebitenutil.DebugPrintAt(screen, total, barX+barWidth-len(total)*6, barY-16)

	// Show the remaining time at the cursor when hovering the bar
	mouseX, mouseY := ebiten.CursorPosition()
	if mouseX < barX || mouseX > barX+barWidth || mouseY < barY || mouseY > barY+barHeight {
		return
	}
	at := time.Duration(float64(mouseX-barX) / float64(barWidth) * float64(g.frame.Total))
	tooltip := fmt.Sprintf("%s left", formatDuration(g.frame.Total-at))
	tooltipWidth := len(tooltip)*6 + 10
	tooltipX := mouseX - tooltipWidth/2
	tooltipY := mouseY - 25
	if tooltipX < 0 {
		tooltipX = 0
	}
	if tooltipX+tooltipWidth > b.Dx() {
		tooltipX = b.Dx() - tooltipWidth
	}
	vector.DrawFilledRect(screen, float32(tooltipX), float32(tooltipY), float32(tooltipWidth), 20, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	ebitenutil.DebugPrintAt(screen, tooltip, tooltipX+5, tooltipY+3)
}

func (g *Game) drawButtons(screen *ebiten.Image) {
	for i, bt := range g.buttons {
		// Button background
		var bgColor color.Color
		switch {
		case i == g.pressed:
			bgColor = color.RGBA{R: 150, G: 110, B: 50, A: 255} // Pressed
		case i == g.hovered:
			bgColor = color.RGBA{R: 190, G: 145, B: 70, A: 255} // Hovered
		case bt.act == actPreset:
			bgColor = color.RGBA{R: 90, G: 90, B: 100, A: 255}
		default:
			bgColor = color.RGBA{R: 120, G: 120, B: 130, A: 255} // Normal
		}
		vector.DrawFilledRect(screen, float32(bt.x), float32(bt.y), float32(bt.w), float32(bt.h), bgColor, false)

		// Button border
		borderColor := color.RGBA{R: 60, G: 60, B: 70, A: 255}
		vector.StrokeRect(screen, float32(bt.x), float32(bt.y), float32(bt.w), float32(bt.h), 2, borderColor, false)

		// Button text
		textWidth := len(bt.label) * 6 // Approximate character width
		textX := bt.x + (bt.w-textWidth)/2
		textY := bt.y + (bt.h-16)/2
		ebitenutil.DebugPrintAt(screen, bt.label, textX, textY)
	}
}
