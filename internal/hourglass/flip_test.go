package hourglass

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipProgressIsMonotonic(t *testing.T) {
	f := NewFlip(time.Second, nil)
	require.True(t, f.Begin())

	prev := f.Angle()
	for i := 0; i < 100 && f.Active(); i++ {
		f.Step(16 * time.Millisecond)
		assert.GreaterOrEqual(t, f.Angle(), prev)
		assert.LessOrEqual(t, f.Angle(), math.Pi)
		prev = f.Angle()
	}
	assert.False(t, f.Active())
	assert.Equal(t, math.Pi, f.Angle())
}

func TestFlipIgnoresReentrantBegin(t *testing.T) {
	f := NewFlip(time.Second, LinearCurve)
	require.True(t, f.Begin())
	f.Step(300 * time.Millisecond)
	start, end := f.Bounds()

	assert.False(t, f.Begin())
	gotStart, gotEnd := f.Bounds()
	assert.Equal(t, start, gotStart)
	assert.Equal(t, end, gotEnd)
	assert.InDelta(t, 0.3, f.Progress(), 1e-9)
	assert.InDelta(t, 0.3*math.Pi, f.Angle(), 1e-9)
}

func TestFlipAccumulatesExactly(t *testing.T) {
	f := NewFlip(time.Second, nil)
	for i := 1; i <= 4; i++ {
		require.True(t, f.Begin())
		for !f.Step(17 * time.Millisecond) {
		}
		_, end := f.Bounds()
		assert.Equal(t, end, f.Angle())
		assert.InDelta(t, float64(i)*math.Pi, f.Angle(), 1e-12)
		assert.Equal(t, FlipIdle, f.State())
	}
}

func TestTimelineCurves(t *testing.T) {
	tl := Timeline{Duration: time.Second, Curve: EaseOutQuad}
	assert.Equal(t, 0.0, tl.Value())
	tl.Step(500 * time.Millisecond)
	assert.InDelta(t, 0.75, tl.Value(), 1e-12)
	assert.False(t, tl.Done())
	assert.True(t, tl.Step(2*time.Second))
	assert.Equal(t, 1.0, tl.Value())

	zero := Timeline{}
	assert.True(t, zero.Done())
}
