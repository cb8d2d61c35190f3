package hourglass

import (
	"fmt"
	"math"
	"time"
)

// DefaultFlipDuration is how long the 180° turn takes.
const DefaultFlipDuration = time.Second

// FlipState is the state of the flip controller.
type FlipState int

const (
	FlipIdle FlipState = iota
	FlipActive
)

func (s FlipState) String() string {
	switch s {
	case FlipIdle:
		return "idle"
	case FlipActive:
		return "flipping"
	default:
		return fmt.Sprintf("FlipState(%d)", int(s))
	}
}

// Flip animates the half turn that resets the hourglass. The angle persists
// between flips and grows by π each time one completes.
type Flip struct {
	angle    float64
	start    float64
	end      float64
	state    FlipState
	timeline Timeline
}

// NewFlip returns an idle flip controller. A nil curve turns at constant speed.
func NewFlip(d time.Duration, curve Curve) *Flip {
	if curve == nil {
		curve = LinearCurve
	}
	return &Flip{timeline: Timeline{Duration: d, Curve: curve}}
}

// Begin starts a flip from the current angle. It returns false, changing
// nothing, if a flip is already running.
func (f *Flip) Begin() bool {
	if f.state == FlipActive {
		return false
	}
	f.start = f.angle
	f.end = f.angle + math.Pi
	f.state = FlipActive
	f.timeline.Reset()
	return true
}

// Step advances the rotation and reports whether the flip just completed.
func (f *Flip) Step(dt time.Duration) bool {
	if f.state != FlipActive {
		return false
	}
	if !f.timeline.Step(dt) {
		f.angle = lerp(f.start, f.end, f.timeline.Value())
		return false
	}
	// Snap to the end value so repeated flips don't drift.
	f.angle = f.end
	f.state = FlipIdle
	return true
}

func (f *Flip) Angle() float64 { return f.angle }
func (f *Flip) State() FlipState { return f.state }
func (f *Flip) Active() bool { return f.state == FlipActive }
func (f *Flip) Bounds() (start, end float64) { return f.start, f.end }
func (f *Flip) Progress() float64 { return f.timeline.Progress() }
