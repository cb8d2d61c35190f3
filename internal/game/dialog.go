package game

import (
	"errors"
	"time"

	"github.com/ncruces/zenity"

	"github.com/dileepajay/sand-hour-glass-timer/internal/alarm"
	"github.com/dileepajay/sand-hour-glass-timer/internal/config"
)

const customTimeTitle = "Add Custom Time"

type resultKind int

const (
	resultDuration resultKind = iota
	resultAlarm
	resultError
)

// dialogResult carries the outcome of a modal dialog back to the game
// goroutine.
type dialogResult struct {
	kind resultKind
	dur  time.Duration
	path string
	err  error
}

// openDialog runs fn on its own goroutine, since zenity blocks until the
// user answers. Only one dialog is open at a time.
func (g *Game) openDialog(fn func() (dialogResult, bool)) {
	if !g.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer g.dialogOpen.Store(false)
		r, ok := fn()
		if !ok {
			return
		}
		select {
		case g.results <- r:
		default:
			g.log.Printf("dropped dialog result %+v", r)
		}
	}()
}

// askCustomDuration asks for a countdown length the way the preset
// dropdown's "add custom time" entry does.
func (g *Game) askCustomDuration() {
	g.openDialog(func() (dialogResult, bool) {
		s, err := zenity.Entry("Countdown length (minutes, H:MM or 1h30m):",
			zenity.Title(customTimeTitle),
			zenity.EntryText("0:05"),
		)
		if errors.Is(err, zenity.ErrCanceled) {
			return dialogResult{}, false
		}
		if err != nil {
			return dialogResult{kind: resultError, err: err}, true
		}
		d, err := config.ParseCustomDuration(s)
		if err != nil {
			_ = zenity.Error("Please enter a valid custom time", zenity.Title(customTimeTitle), zenity.ErrorIcon)
			return dialogResult{kind: resultError, err: err}, true
		}
		return dialogResult{kind: resultDuration, dur: d}, true
	})
}

// chooseAlarmSound lets the user pick the audio file rung at zero. The file
// is decoded here so the frame loop never waits on it.
func (g *Game) chooseAlarmSound() {
	g.openDialog(func() (dialogResult, bool) {
		filename, err := zenity.SelectFile(
			zenity.Title("Choose Alarm Sound"),
			zenity.FileFilters{{
				Name:     "Audio",
				Patterns: alarm.Extensions,
			}},
		)
		if errors.Is(err, zenity.ErrCanceled) {
			return dialogResult{}, false
		}
		if err == nil && g.player != nil {
			err = g.player.SetSound(filename)
		}
		if err != nil {
			return dialogResult{kind: resultError, err: err}, true
		}
		return dialogResult{kind: resultAlarm, path: filename}, true
	})
}
