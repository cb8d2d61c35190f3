package hourglass

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDuration is returned when a countdown is started with a
// non-positive duration.
var ErrInvalidDuration = errors.New("hourglass: duration must be positive")

// Clock tracks the remaining time of a countdown. Time only drains while the
// clock is neither paused nor frozen by a flip.
type Clock struct {
	total    time.Duration
	left     time.Duration
	paused   bool
	flipping bool
}

// NewClock returns a paused clock holding a full countdown of d.
func NewClock(d time.Duration) (*Clock, error) {
	if d <= 0 {
		return nil, fmt.Errorf("new clock %v: %w", d, ErrInvalidDuration)
	}
	return &Clock{total: d, left: d, paused: true}, nil
}

// Start (re)starts the countdown at d and unpauses the clock.
func (c *Clock) Start(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("start %v: %w", d, ErrInvalidDuration)
	}
	c.total = d
	c.left = d
	c.paused = false
	return nil
}

// Pause freezes the countdown in place.
func (c *Clock) Pause() { c.paused = true }

// Resume continues a paused countdown. A finished countdown stays finished.
func (c *Clock) Resume() {
	if c.left > 0 {
		c.paused = false
	}
}

// Advance drains dt from the countdown and returns the drain fraction.
// Reaching zero pauses the clock until the next Start.
func (c *Clock) Advance(dt time.Duration) float64 {
	if c.paused || c.flipping || dt <= 0 {
		return c.Fraction()
	}
	c.left -= dt
	if c.left <= 0 {
		c.left = 0
		c.paused = true
	}
	return c.Fraction()
}

// Fraction reports how much of the sand has run: 0 is a full top chamber,
// 1 a full bottom chamber.
func (c *Clock) Fraction() float64 {
	return 1 - float64(c.left)/float64(c.total)
}

func (c *Clock) Remaining() time.Duration { return c.left }
func (c *Clock) Total() time.Duration { return c.total }
func (c *Clock) Paused() bool { return c.paused }
func (c *Clock) Flipping() bool { return c.flipping }
func (c *Clock) Done() bool { return c.left == 0 }

// SetFlipping freezes (or releases) the clock for a flip animation.
func (c *Clock) SetFlipping(v bool) { c.flipping = v }
