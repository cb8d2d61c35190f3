package game

import (
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dileepajay/sand-hour-glass-timer/internal/alarm"
	"github.com/dileepajay/sand-hour-glass-timer/internal/config"
	"github.com/dileepajay/sand-hour-glass-timer/internal/hourglass"
	"github.com/dileepajay/sand-hour-glass-timer/internal/scene"
)

// popDecay is how fast the clock's per-second pop shrinks, per second.
const popDecay = 4.0

// Game hosts the hourglass in an ebiten window. Update is the frame driver's
// host: it forwards input to the driver and steps it once per tick.
type Game struct {
	cfg     *config.Manager
	drv     *hourglass.Driver
	palette scene.Palette
	player  *alarm.Player
	log     *log.Logger
	now     func() time.Time

	last  time.Time
	frame hourglass.Frame
	sc    scene.Scene

	presets *presetPicker
	buttons []button
	prevKey map[ebiten.Key]bool

	// button state
	hovered int
	pressed int

	// dialogs
	dialogOpen atomic.Bool
	results    chan dialogResult

	// clock display
	lastSeconds int
	pop         float64

	layers  maskLayers
	surface struct{ w, h int }
	lastErr error
}

// NewGame wires a game around an existing driver. player may be nil to run
// without sound.
func NewGame(cfg *config.Manager, drv *hourglass.Driver, player *alarm.Player, logger *log.Logger) (*Game, error) {
	palette, err := cfg.Config().Palette()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		cfg:         cfg,
		drv:         drv,
		palette:     palette,
		player:      player,
		log:         logger,
		now:         time.Now,
		presets:     newPresetPicker(cfg.Config().Timer.Presets, drv.Duration()),
		prevKey:     map[ebiten.Key]bool{},
		hovered:     -1,
		pressed:     -1,
		results:     make(chan dialogResult, 4),
		lastSeconds: -1,
	}
	g.buttons = layoutButtons(g.presets.label())
	g.frame = drv.Step(0)
	return g, nil
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	// Handle button interactions
	mouseX, mouseY := ebiten.CursorPosition()
	g.hovered = hitButton(g.buttons, mouseX, mouseY)
	if g.hovered >= 0 && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressed = g.hovered
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.pressed >= 0 && g.pressed == g.hovered {
			g.do(g.buttons[g.pressed].act)
		}
		g.pressed = -1
	}

	if justPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if justPressed(ebiten.KeyS) {
		g.do(actStart)
	}
	if justPressed(ebiten.KeyP) {
		g.do(actPause)
	}
	if justPressed(ebiten.KeyR) {
		g.do(actReset)
	}
	if justPressed(ebiten.KeyLeft) {
		g.do(actPrevPreset)
	}
	if justPressed(ebiten.KeyRight) {
		g.do(actNextPreset)
	}
	if justPressed(ebiten.KeyC) {
		g.do(actCustom)
	}
	if justPressed(ebiten.KeyA) {
		g.do(actAlarm)
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		if g.player != nil {
			g.player.Stop()
		}
		return ebiten.Termination
	}

	g.applyResults()
	g.step()
	return nil
}

// step advances the simulation by the wall-clock time since the last tick.
func (g *Game) step() {
	now := g.now()
	var dt time.Duration
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	g.frame = g.drv.Step(dt)
	if g.frame.Err != nil {
		g.setErr(g.frame.Err)
	}
	if g.frame.Completed {
		g.log.Printf("countdown of %v finished", g.frame.Total)
		g.ring()
	}
	if g.frame.FlipDone {
		g.log.Printf("flipped, restarting at %v", g.frame.Total)
	}

	if g.frame.Seconds != g.lastSeconds {
		g.lastSeconds = g.frame.Seconds
		g.pop = 1
	}
	g.pop = clamp01(g.pop - popDecay*dt.Seconds())
}

func (g *Game) do(a action) {
	switch a {
	case actStart:
		g.submit(hourglass.Start(g.presets.selected()))
		g.silence()
	case actPause:
		g.submit(hourglass.Pause())
	case actReset:
		g.submit(hourglass.SetDuration(g.presets.selected()))
		g.submit(hourglass.Reset())
		g.silence()
	case actPrevPreset:
		g.selectPreset(g.presets.prev())
	case actPreset, actNextPreset:
		g.selectPreset(g.presets.next())
	case actCustom:
		g.askCustomDuration()
	case actAlarm:
		g.chooseAlarmSound()
	}
}

func (g *Game) togglePause() {
	switch {
	case g.frame.Flipping:
	case !g.frame.Paused:
		g.submit(hourglass.Pause())
	case g.frame.Remaining > 0 && g.frame.Remaining < g.frame.Total:
		g.submit(hourglass.Resume())
	default:
		g.do(actStart)
	}
}

func (g *Game) selectPreset(d time.Duration) {
	g.submit(hourglass.SetDuration(d))
	g.buttons = layoutButtons(g.presets.label())
}

func (g *Game) submit(r hourglass.Request) {
	if err := g.drv.Submit(r); err != nil {
		g.setErr(err)
	}
}

func (g *Game) applyResults() {
	for {
		select {
		case r := <-g.results:
			g.apply(r)
		default:
			return
		}
	}
}

func (g *Game) apply(r dialogResult) {
	switch r.kind {
	case resultDuration:
		if err := g.cfg.AddPreset(r.dur); err != nil {
			g.setErr(err)
		}
		g.presets.setList(g.cfg.Config().Timer.Presets)
		g.presets.selectDuration(r.dur)
		g.selectPreset(r.dur)
		g.log.Printf("added custom time %v", r.dur)
	case resultAlarm:
		if err := g.cfg.SetAlarmSound(r.path); err != nil {
			g.setErr(err)
		}
		g.log.Printf("alarm sound set to %s", r.path)
	case resultError:
		g.setErr(r.err)
	}
}

func (g *Game) ring() {
	if g.player == nil || !g.cfg.Config().Alarm.Enabled {
		return
	}
	if err := g.player.Play(); err != nil {
		g.setErr(err)
	}
}

func (g *Game) silence() {
	if g.player != nil {
		g.player.Stop()
	}
}

func (g *Game) setErr(err error) {
	g.lastErr = err
	g.log.Printf("error: %v", err)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.surface.w || outsideHeight != g.surface.h {
		g.surface.w, g.surface.h = outsideWidth, outsideHeight
		g.submit(hourglass.Resize(outsideWidth, outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	c := g.cfg.Config().Window
	ebiten.SetWindowSize(c.Width, c.Height)
	ebiten.SetWindowTitle(c.Title + " - Space: start/pause, R: flip, C: custom time, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
