package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"time"

	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"
	"gopkg.in/yaml.v3"

	"github.com/dileepajay/sand-hour-glass-timer/internal/hourglass"
	"github.com/dileepajay/sand-hour-glass-timer/internal/scene"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// DefaultFile is the config file name inside the config directory.
	DefaultFile = "hourglass.yaml"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window WindowConfig `yaml:"window"`
	Layout LayoutConfig `yaml:"layout"`
	Timer  TimerConfig  `yaml:"timer"`
	Sand   SandConfig   `yaml:"sand"`
	Alarm  AlarmConfig  `yaml:"alarm"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// LayoutConfig is the share of the window the hourglass may occupy.
type LayoutConfig struct {
	WidthRatio  float64 `yaml:"width_ratio"`
	HeightRatio float64 `yaml:"height_ratio"`
}

type TimerConfig struct {
	Default            time.Duration   `yaml:"default"`
	Presets            []time.Duration `yaml:"presets"`
	FlipDuration       time.Duration   `yaml:"flip_duration"`
	AutoStartAfterFlip bool            `yaml:"auto_start_after_flip"`
}

type SandConfig struct {
	BatchSize    int     `yaml:"batch_size"`
	Gravity      float64 `yaml:"gravity"`
	CullOffset   float64 `yaml:"cull_offset"`
	MaxGrains    int     `yaml:"max_grains"`
	Drift        float64 `yaml:"drift"`
	Color        string  `yaml:"color"`
	Outline      string  `yaml:"outline"`
	OutlineWidth float64 `yaml:"outline_width"`
	Background   string  `yaml:"background"`
}

type AlarmConfig struct {
	Enabled bool `yaml:"enabled"`
	// Sound is a wav, mp3 or flac file. Empty means the built-in chime.
	Sound  string  `yaml:"sound"`
	Volume float64 `yaml:"volume"`
}

// DefaultConfig returns the stock settings.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "Sand Hourglass",
		},
		Layout: LayoutConfig{
			WidthRatio:  0.6,
			HeightRatio: 0.8,
		},
		Timer: TimerConfig{
			Default:            time.Minute,
			Presets:            []time.Duration{30 * time.Second, time.Minute, 5 * time.Minute, 10 * time.Minute, 25 * time.Minute},
			FlipDuration:       hourglass.DefaultFlipDuration,
			AutoStartAfterFlip: true,
		},
		Sand: SandConfig{
			BatchSize:    hourglass.DefaultBatchSize,
			Gravity:      hourglass.DefaultGravity,
			CullOffset:   hourglass.DefaultCullOffset,
			MaxGrains:    hourglass.DefaultMaxGrains,
			Drift:        hourglass.DefaultDrift,
			Color:        scene.DefaultSand,
			Outline:      scene.DefaultOutline,
			OutlineWidth: 3,
			Background:   scene.DefaultBackground,
		},
		Alarm: AlarmConfig{
			Enabled: true,
			Volume:  0.8,
		},
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
		}
	}
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Layout.WidthRatio > 0 && c.Layout.WidthRatio <= 1, "layout.width_ratio %v", c.Layout.WidthRatio)
	check(c.Layout.HeightRatio > 0 && c.Layout.HeightRatio <= 1, "layout.height_ratio %v", c.Layout.HeightRatio)
	check(c.Timer.Default > 0, "timer.default %v", c.Timer.Default)
	for _, p := range c.Timer.Presets {
		check(p > 0, "timer.presets entry %v", p)
	}
	check(c.Timer.FlipDuration > 0, "timer.flip_duration %v", c.Timer.FlipDuration)
	check(c.Sand.BatchSize > 0, "sand.batch_size %d", c.Sand.BatchSize)
	check(c.Sand.Gravity > 0, "sand.gravity %v", c.Sand.Gravity)
	check(c.Sand.CullOffset >= 0, "sand.cull_offset %v", c.Sand.CullOffset)
	check(c.Sand.MaxGrains >= c.Sand.BatchSize, "sand.max_grains %d", c.Sand.MaxGrains)
	check(c.Sand.Drift >= 0, "sand.drift %v", c.Sand.Drift)
	check(c.Sand.OutlineWidth >= 0, "sand.outline_width %v", c.Sand.OutlineWidth)
	if _, perr := scene.NewPalette(c.Sand.Color, c.Sand.Outline, c.Sand.Background); perr != nil {
		check(false, "%v", perr)
	}
	check(c.Alarm.Volume >= 0 && c.Alarm.Volume <= 1, "alarm.volume %v", c.Alarm.Volume)
	return err
}

// StreamConfig maps the sand settings onto the particle stream.
func (c *Config) StreamConfig() hourglass.StreamConfig {
	return hourglass.StreamConfig{
		BatchSize:  c.Sand.BatchSize,
		Gravity:    c.Sand.Gravity,
		CullOffset: c.Sand.CullOffset,
		MaxGrains:  c.Sand.MaxGrains,
		Drift:      c.Sand.Drift,
	}
}

// Palette parses the configured colors.
func (c *Config) Palette() (scene.Palette, error) {
	return scene.NewPalette(c.Sand.Color, c.Sand.Outline, c.Sand.Background)
}

// Manager loads and persists the config on a billy filesystem.
type Manager struct {
	fs     billy.Filesystem
	name   string
	config *Config
}

// NewManager loads name from fs, writing the defaults there first if the
// file does not exist yet.
func NewManager(fs billy.Filesystem, name string) (*Manager, error) {
	m := &Manager{fs: fs, name: name}
	err := m.load()
	switch {
	case err == nil:
		return m, nil
	case errors.Is(err, os.ErrNotExist):
		m.config = DefaultConfig()
		if err := m.Save(); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, err
	}
}

func (m *Manager) load() error {
	f, err := m.fs.Open(m.name)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(f)
	err = multierr.Append(err, f.Close())
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", m.name, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", m.name, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", m.name, err)
	}
	m.config = cfg
	return nil
}

// Save writes the config to a temporary file and renames it into place.
func (m *Manager) Save() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	dir := path.Dir(m.name)
	if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return err
	}
	temp, err := m.fs.TempFile(dir, path.Base(m.name))
	if err != nil {
		return err
	}
	_, err = temp.Write(data)
	err = multierr.Append(err, temp.Close())
	if err != nil {
		return multierr.Append(err, m.fs.Remove(temp.Name()))
	}
	return m.fs.Rename(temp.Name(), m.name)
}

func (m *Manager) Config() *Config { return m.config }

// AddPreset remembers a custom duration. Presets stay sorted and unique.
func (m *Manager) AddPreset(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("preset %v: %w", d, hourglass.ErrInvalidDuration)
	}
	for _, p := range m.config.Timer.Presets {
		if p == d {
			return nil
		}
	}
	m.config.Timer.Presets = append(m.config.Timer.Presets, d)
	sort.Slice(m.config.Timer.Presets, func(i, j int) bool {
		return m.config.Timer.Presets[i] < m.config.Timer.Presets[j]
	})
	return m.Save()
}

// SetAlarmSound stores the alarm file path; empty restores the chime.
func (m *Manager) SetAlarmSound(p string) error {
	m.config.Alarm.Sound = p
	return m.Save()
}
