package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"github.com/dileepajay/sand-hour-glass-timer/internal/alarm"
	"github.com/dileepajay/sand-hour-glass-timer/internal/config"
	"github.com/dileepajay/sand-hour-glass-timer/internal/game"
	"github.com/dileepajay/sand-hour-glass-timer/internal/hourglass"
	"github.com/dileepajay/sand-hour-glass-timer/internal/scene"
)

var (
	configDir = flag.String("config", "", "config directory (default: user config dir)")
	duration  = flag.Duration("duration", 0, "countdown length (default: timer.default from the config)")
	headless  = flag.Bool("headless", false, "run the countdown in the terminal without a window")
	snapshot  = flag.String("snapshot", "", "render one frame to this PNG file and exit")
	at        = flag.Duration("at", 0, "with -snapshot: how far into the countdown to render")
	size      = flag.String("size", "", "with -snapshot: image size as WxH (default: window size)")
)

func main() {
	flag.Parse()
	logger := log.New(os.Stderr, "hourglass: ", log.LstdFlags)
	if err := run(logger); err != nil {
		logger.Fatal(err)
	}
}

func run(logger *log.Logger) error {
	dir, err := resolveConfigDir(*configDir)
	if err != nil {
		return err
	}
	m, err := config.NewManager(osfs.New(dir), config.DefaultFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := m.Config()
	logger.Printf("config %s", filepath.Join(dir, config.DefaultFile))

	d := cfg.Timer.Default
	if *duration != 0 {
		d = *duration
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	if *size != "" {
		if _, err := fmt.Sscanf(*size, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
			return fmt.Errorf("bad -size %q", *size)
		}
	}

	drv, err := hourglass.NewDriver(hourglass.Options{
		Duration:           d,
		FlipDuration:       cfg.Timer.FlipDuration,
		AutoStartAfterFlip: cfg.Timer.AutoStartAfterFlip,
		Stream:             cfg.StreamConfig(),
		WidthRatio:         cfg.Layout.WidthRatio,
		HeightRatio:        cfg.Layout.HeightRatio,
		SurfaceWidth:       w,
		SurfaceHeight:      h,
	})
	if err != nil {
		return err
	}

	switch {
	case *snapshot != "":
		return renderSnapshot(drv, cfg, *snapshot, *at)
	case *headless:
		return runHeadless(drv, logger)
	}

	player := alarm.NewPlayer(cfg.Alarm.Volume)
	if cfg.Alarm.Sound != "" {
		if err := player.SetSound(cfg.Alarm.Sound); err != nil {
			logger.Printf("alarm sound %s: %v, using the chime", cfg.Alarm.Sound, err)
		}
	}
	g, err := game.NewGame(m, drv, player, logger)
	if err != nil {
		return err
	}
	return game.Run(g)
}

func resolveConfigDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "sand-hourglass"), nil
}

// runHeadless counts down in the terminal, printing MM:SS as it changes.
func runHeadless(drv *hourglass.Driver, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := drv.Submit(hourglass.Start(drv.Duration())); err != nil {
		return err
	}
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	last := -1
	err := drv.Run(ctx, ticker.C, func(f hourglass.Frame) {
		if f.Seconds != last {
			last = f.Seconds
			fmt.Printf("\r%s  %3.0f%%", game.FormatClock(f.Seconds), f.Fraction*100)
		}
		if f.Completed {
			fmt.Println()
			logger.Printf("countdown of %v finished", f.Total)
			cancel()
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// renderSnapshot advances a fresh countdown by offset and writes the frame
// as a PNG through the software raster.
func renderSnapshot(drv *hourglass.Driver, cfg *config.Config, path string, offset time.Duration) (err error) {
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}
	if err := drv.Submit(hourglass.Start(drv.Duration())); err != nil {
		return err
	}

	// Run the last couple of seconds frame by frame so the stream is full.
	const frame = time.Second / 60
	steps := int(offset / frame)
	if steps > 120 {
		drv.Step(0)
		drv.Step(offset - 120*frame)
		steps = 120
	}
	f := drv.Step(0)
	for i := 0; i < steps; i++ {
		f = drv.Step(frame)
	}

	sc := scene.Build(f, palette, cfg.Sand.OutlineWidth)
	img := image.NewRGBA(image.Rect(0, 0, f.SurfaceW, f.SurfaceH))
	scene.NewRaster(f.SurfaceW, f.SurfaceH).Draw(&sc, img)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, out.Close()) }()
	return png.Encode(out, img)
}
