package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileepajay/sand-hour-glass-timer/internal/hourglass"
)

func TestParseCustomDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"25", 25 * time.Minute},
		{"1:30", 90 * time.Minute},
		{" 0:05 ", 5 * time.Minute},
		{"2:00", 2 * time.Hour},
		{"1h15m", 75 * time.Minute},
		{"90s", 90 * time.Second},
		{"1.5s", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCustomDuration(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCustomDurationRejects(t *testing.T) {
	for _, in := range []string{"", "0", "0:00", "-5", "-1:30", "-10s", "300ms"} {
		_, err := ParseCustomDuration(in)
		assert.ErrorIs(t, err, hourglass.ErrInvalidDuration, "input %q", in)
	}
}

func TestParseCustomDurationRejectsOverflow(t *testing.T) {
	for _, in := range []string{
		"153722867280912931",
		"2562047788015216:0",
		"2562047:60",
		"0:153722868",
	} {
		d, err := ParseCustomDuration(in)
		assert.ErrorIs(t, err, hourglass.ErrInvalidDuration, "input %q", in)
		assert.Zero(t, d)
	}

	d, err := ParseCustomDuration("2562047:0")
	require.NoError(t, err)
	assert.Equal(t, 2562047*time.Hour, d)
}

func TestParseCustomDurationRejectsGarbage(t *testing.T) {
	for _, in := range []string{"soon", "1:xx", "x:10"} {
		_, err := ParseCustomDuration(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestPresetLabel(t *testing.T) {
	assert.Equal(t, "30s", PresetLabel(30*time.Second))
	assert.Equal(t, "5m", PresetLabel(5*time.Minute))
	assert.Equal(t, "1h 30m", PresetLabel(90*time.Minute))
	assert.Equal(t, "1m 5s", PresetLabel(65*time.Second))
	assert.Equal(t, "0s", PresetLabel(0))
}
