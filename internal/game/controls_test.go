package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLayoutButtonsHitTesting(t *testing.T) {
	bs := layoutButtons("1m")
	assert.Len(t, bs, 8)

	i := hitButton(bs, buttonX+1, buttonY+1)
	assert.Equal(t, actStart, bs[i].act)

	reset := bs[2]
	assert.Equal(t, 2, hitButton(bs, reset.x+reset.w/2, reset.y+reset.h/2))
	assert.Equal(t, -1, hitButton(bs, 0, 0))
	assert.Equal(t, -1, hitButton(bs, buttonX+buttonWidth+buttonGap/2, buttonY+5), "gap between buttons")
}

func TestPresetPicker(t *testing.T) {
	p := newPresetPicker([]time.Duration{30 * time.Second, time.Minute, 5 * time.Minute}, time.Minute)
	assert.Equal(t, time.Minute, p.selected())
	assert.Equal(t, "1m", p.label())

	assert.Equal(t, 5*time.Minute, p.next())
	assert.Equal(t, 30*time.Second, p.next())
	assert.Equal(t, 5*time.Minute, p.prev())

	p.selectDuration(2 * time.Hour)
	assert.Equal(t, 2*time.Hour, p.selected())
	assert.Len(t, p.list, 4)

	p.setList([]time.Duration{time.Minute, 2 * time.Hour})
	assert.Equal(t, 2*time.Hour, p.selected())
	assert.Equal(t, 1, p.index)
}

func TestPresetPickerEmpty(t *testing.T) {
	p := newPresetPicker(nil, 0)
	assert.Equal(t, time.Duration(0), p.next())
	assert.Equal(t, time.Duration(0), p.prev())
}
