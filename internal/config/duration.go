package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dileepajay/sand-hour-glass-timer/internal/hourglass"
)

// Longest countdown a time.Duration can hold, in whole hours and minutes.
const (
	maxHours   = int(math.MaxInt64 / time.Hour)
	maxMinutes = int(math.MaxInt64 / time.Minute)
)

// ParseCustomDuration reads a user-entered countdown length. It accepts Go
// durations ("1h30m", "90s"), hours and minutes ("1:30") and bare minutes
// ("25"). Anything that is not positive is rejected.
func ParseCustomDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration: %w", hourglass.ErrInvalidDuration)
	}

	var d time.Duration
	switch {
	case strings.Contains(s, ":"):
		hs, ms, _ := strings.Cut(s, ":")
		hours, err := strconv.Atoi(strings.TrimSpace(hs))
		if err != nil {
			return 0, fmt.Errorf("hours %q: %w", hs, err)
		}
		minutes, err := strconv.Atoi(strings.TrimSpace(ms))
		if err != nil {
			return 0, fmt.Errorf("minutes %q: %w", ms, err)
		}
		if hours < 0 || minutes < 0 || hours > maxHours || minutes > maxMinutes-hours*60 {
			return 0, fmt.Errorf("duration %q: %w", s, hourglass.ErrInvalidDuration)
		}
		d = time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	default:
		if minutes, err := strconv.Atoi(s); err == nil {
			if minutes > maxMinutes {
				return 0, fmt.Errorf("duration %q: %w", s, hourglass.ErrInvalidDuration)
			}
			d = time.Duration(minutes) * time.Minute
			break
		}
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return 0, err
		}
	}

	// Countdowns run in whole seconds.
	if d = d.Truncate(time.Second); d <= 0 {
		return 0, fmt.Errorf("duration %q: %w", s, hourglass.ErrInvalidDuration)
	}
	return d, nil
}

// PresetLabel names a preset the way the picker shows it: "30s", "5m",
// "1h 30m".
func PresetLabel(d time.Duration) string {
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	return strings.Join(parts, " ")
}
