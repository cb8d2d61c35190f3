package alarm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/multierr"
)

// ErrUnsupported is returned for audio files that are not wav, mp3 or flac.
var ErrUnsupported = errors.New("unsupported audio file")

// Extensions lists the file types Load understands.
var Extensions = []string{"*.wav", "*.mp3", "*.flac"}

type decoder func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

func decoderFor(path string) (decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }, nil
	case ".mp3":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }, nil
	case ".flac":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

// Load decodes an audio file fully into memory, resampled to SampleRate.
func Load(path string) (*beep.Buffer, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	streamer, format, err := decode(f)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("decode %s: %w", path, err), f.Close())
	}
	// Decoders close the underlying file along with the stream.
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	var s beep.Streamer = streamer
	if format.SampleRate != SampleRate {
		s = beep.Resample(4, format.SampleRate, SampleRate, streamer)
	}
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

// Player owns the speaker and the current alarm sound.
type Player struct {
	mu      sync.Mutex
	initErr error
	once    sync.Once
	volume  float64
	sound   *beep.Buffer
	ctrl    *beep.Ctrl
	playing bool
}

// NewPlayer creates a player that rings the built-in chime until SetSound
// is called.
func NewPlayer(volume float64) *Player {
	return &Player{volume: volume}
}

func (p *Player) init() error {
	p.once.Do(func() {
		p.initErr = speaker.Init(SampleRate, SampleRate.N(time.Second/20))
	})
	return p.initErr
}

// SetSound switches to the audio file at path; an empty path restores the
// chime.
func (p *Player) SetSound(path string) error {
	if path == "" {
		p.mu.Lock()
		p.sound = nil
		p.mu.Unlock()
		return nil
	}
	buf, err := Load(path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.sound = buf
	p.mu.Unlock()
	return nil
}

// Play rings the alarm, cutting off one that is still ringing.
func (p *Player) Play() error {
	if err := p.init(); err != nil {
		return fmt.Errorf("speaker: %w", err)
	}
	p.Stop()

	p.mu.Lock()
	var s beep.Streamer
	if p.sound != nil {
		s = withVolume(p.sound.Streamer(0, p.sound.Len()), p.volume)
	} else {
		s = Chime(p.volume)
	}
	ctrl := &beep.Ctrl{Streamer: s}
	p.ctrl = ctrl
	p.playing = true
	p.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.mu.Lock()
		if p.ctrl == ctrl {
			p.playing = false
		}
		p.mu.Unlock()
	})))
	return nil
}

// Stop silences the alarm.
func (p *Player) Stop() {
	p.mu.Lock()
	ctrl := p.ctrl
	p.ctrl = nil
	p.playing = false
	p.mu.Unlock()
	if ctrl == nil {
		return
	}
	// The speaker goroutine takes p.mu in the end-of-sound callback, so the
	// speaker lock is never taken while holding p.mu.
	speaker.Lock()
	ctrl.Paused = true
	speaker.Unlock()
	speaker.Clear()
}

// Playing reports whether the alarm is still ringing.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
