package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileepajay/sand-hour-glass-timer/internal/config"
	"github.com/dileepajay/sand-hour-glass-timer/internal/hourglass"
)

func TestRenderSnapshot(t *testing.T) {
	cfg := config.DefaultConfig()
	drv, err := hourglass.NewDriver(hourglass.Options{
		Duration:      time.Minute,
		Stream:        cfg.StreamConfig(),
		SurfaceWidth:  300,
		SurfaceHeight: 200,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, renderSnapshot(drv, cfg, path, 30*time.Second))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
	assert.InDelta(t, 0.5, drv.Clock().Fraction(), 1e-9)
}

func TestResolveConfigDir(t *testing.T) {
	dir, err := resolveConfigDir("/tmp/hg")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/hg", dir)
}
