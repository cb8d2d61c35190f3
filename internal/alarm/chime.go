// Package alarm plays the end-of-countdown sound: a synthesized chime or an
// audio file chosen by the user.
package alarm

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// SampleRate is the rate the speaker runs at. Files at other rates are
// resampled.
const SampleRate beep.SampleRate = 44100

const (
	chimeNote    = 250 * time.Millisecond
	chimeAttack  = 5 * time.Millisecond
	chimeRelease = 200 * time.Millisecond
)

// chimeNotes is a rising major triad (C6, E6, G6) rung twice.
var chimeNotes = []float64{1046.5, 1318.5, 1568.0, 1046.5, 1318.5, 1568.0}

// sine is a fixed-length sine oscillator.
type sine struct {
	freq     float64
	phase    float64
	length   int
	position int
	rate     beep.SampleRate
}

func newSine(freq float64, d time.Duration, rate beep.SampleRate) *sine {
	return &sine{freq: freq, length: rate.N(d), rate: rate}
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	if s.position >= s.length {
		return 0, false
	}
	for i := range samples {
		if s.position >= s.length {
			return i, true
		}
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// envelope fades a stream in over attack and out over the final release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly by vol in [0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Chime builds the built-in alarm at the given volume.
func Chime(vol float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(chimeNotes))
	for _, f := range chimeNotes {
		tone := beep.Mix(
			withVolume(newSine(f, chimeNote, SampleRate), 0.6),
			withVolume(newSine(2*f, chimeNote, SampleRate), 0.2),
		)
		notes = append(notes, newEnvelope(tone, chimeNote, chimeAttack, chimeRelease, SampleRate))
	}
	return withVolume(beep.Seq(notes...), vol)
}
