package game

import (
	"slices"
	"time"

	"github.com/dileepajay/sand-hour-glass-timer/internal/config"
)

const (
	// Button dimensions
	buttonWidth  = 96
	buttonHeight = 32
	buttonX      = 20
	buttonY      = 36
	buttonGap    = 8
	arrowWidth   = 28
)

type action int

const (
	actStart action = iota
	actPause
	actReset
	actPrevPreset
	actPreset
	actNextPreset
	actCustom
	actAlarm
)

type button struct {
	label      string
	x, y, w, h int
	act        action
}

func (b button) contains(x, y int) bool {
	return x >= b.x && x <= b.x+b.w && y >= b.y && y <= b.y+b.h
}

// layoutButtons places the control row left to right.
func layoutButtons(presetLabel string) []button {
	specs := []struct {
		label string
		w     int
		act   action
	}{
		{"Start", buttonWidth, actStart},
		{"Pause", buttonWidth, actPause},
		{"Reset", buttonWidth, actReset},
		{"<", arrowWidth, actPrevPreset},
		{presetLabel, buttonWidth, actPreset},
		{">", arrowWidth, actNextPreset},
		{"Custom...", buttonWidth, actCustom},
		{"Alarm...", buttonWidth, actAlarm},
	}
	out := make([]button, 0, len(specs))
	x := buttonX
	for _, s := range specs {
		out = append(out, button{label: s.label, x: x, y: buttonY, w: s.w, h: buttonHeight, act: s.act})
		x += s.w + buttonGap
	}
	return out
}

// hitButton returns the index of the button under (x, y), or -1.
func hitButton(bs []button, x, y int) int {
	for i, b := range bs {
		if b.contains(x, y) {
			return i
		}
	}
	return -1
}

// presetPicker is the dropdown of countdown lengths.
type presetPicker struct {
	list  []time.Duration
	index int
}

func newPresetPicker(list []time.Duration, selected time.Duration) *presetPicker {
	p := &presetPicker{list: slices.Clone(list)}
	p.selectDuration(selected)
	return p
}

func (p *presetPicker) selected() time.Duration {
	if len(p.list) == 0 {
		return 0
	}
	return p.list[p.index]
}

func (p *presetPicker) next() time.Duration {
	if len(p.list) > 0 {
		p.index = (p.index + 1) % len(p.list)
	}
	return p.selected()
}

func (p *presetPicker) prev() time.Duration {
	if len(p.list) > 0 {
		p.index = (p.index - 1 + len(p.list)) % len(p.list)
	}
	return p.selected()
}

// selectDuration points the picker at d, adding it if it is not listed.
func (p *presetPicker) selectDuration(d time.Duration) {
	for i, v := range p.list {
		if v == d {
			p.index = i
			return
		}
	}
	if d > 0 {
		p.list = append(p.list, d)
		p.index = len(p.list) - 1
	}
}

// setList swaps in a new preset list, keeping the current selection.
func (p *presetPicker) setList(list []time.Duration) {
	cur := p.selected()
	p.list = slices.Clone(list)
	p.index = 0
	p.selectDuration(cur)
}

func (p *presetPicker) label() string {
	return config.PresetLabel(p.selected())
}
