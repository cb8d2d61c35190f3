package hourglass

import "time"

// Curve maps linear progress in [0, 1] to eased progress in [0, 1].
type Curve func(float64) float64

// LinearCurve applies no easing.
func LinearCurve(t float64) float64 { return t }

// EaseOutQuad starts fast and decelerates into the end value.
func EaseOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

// Timeline is a fixed-length, owned animation clock. It is stepped by the
// frame driver instead of running its own ticker.
type Timeline struct {
	Duration time.Duration
	Curve    Curve

	elapsed time.Duration
}

// Reset rewinds the timeline to the start.
func (t *Timeline) Reset() { t.elapsed = 0 }

// Step advances the timeline by dt and reports whether it has finished.
func (t *Timeline) Step(dt time.Duration) bool {
	if dt > 0 {
		t.elapsed += dt
	}
	if t.elapsed > t.Duration {
		t.elapsed = t.Duration
	}
	return t.Done()
}

// Progress returns linear progress in [0, 1].
func (t *Timeline) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(t.elapsed) / float64(t.Duration)
	if p > 1 {
		return 1
	}
	return p
}

// Value returns eased progress.
func (t *Timeline) Value() float64 {
	p := t.Progress()
	if t.Curve == nil || p >= 1 {
		return p
	}
	return t.Curve(p)
}

// Done reports whether the timeline reached its end.
func (t *Timeline) Done() bool { return t.Progress() >= 1 }

// lerp interpolates between a and b at t.
func lerp(a, b, t float64) float64 { return a + (b-a)*t }
