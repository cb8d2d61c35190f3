package hourglass

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// ErrQueueFull is returned by Submit when the driver has not drained the
// previous requests yet.
var ErrQueueFull = errors.New("hourglass: request queue full")

const requestQueueSize = 64

// RequestKind identifies an external request to the simulation.
type RequestKind int

const (
	RequestStart RequestKind = iota
	RequestPause
	RequestResume
	RequestReset
	RequestResize
	RequestSetDuration
)

func (k RequestKind) String() string {
	switch k {
	case RequestStart:
		return "start"
	case RequestPause:
		return "pause"
	case RequestResume:
		return "resume"
	case RequestReset:
		return "reset"
	case RequestResize:
		return "resize"
	case RequestSetDuration:
		return "set-duration"
	default:
		return fmt.Sprintf("RequestKind(%d)", int(k))
	}
}

// Request is a command marshalled into the frame goroutine.
type Request struct {
	Kind     RequestKind
	Duration time.Duration
	Width    int
	Height   int
}

func Start(d time.Duration) Request { return Request{Kind: RequestStart, Duration: d} }
func Pause() Request { return Request{Kind: RequestPause} }
func Resume() Request { return Request{Kind: RequestResume} }
func Reset() Request { return Request{Kind: RequestReset} }
func Resize(w, h int) Request { return Request{Kind: RequestResize, Width: w, Height: h} }
func SetDuration(d time.Duration) Request { return Request{Kind: RequestSetDuration, Duration: d} }

// Options configures a Driver.
type Options struct {
	Duration           time.Duration
	FlipDuration       time.Duration
	FlipCurve          Curve
	AutoStartAfterFlip bool
	Stream             StreamConfig
	WidthRatio         float64
	HeightRatio        float64
	SurfaceWidth       int
	SurfaceHeight      int
	Rand               *rand.Rand
}

// Frame is what the driver hands to the presentation layer after each step.
type Frame struct {
	Remaining time.Duration
	Total     time.Duration
	// Seconds is Remaining truncated to whole seconds.
	Seconds  int
	Fraction float64
	Angle    float64
	Paused   bool
	Flipping bool
	Geometry Geometry
	SurfaceW int
	SurfaceH int
	// Grains is only valid until the next Step.
	Grains []Grain

	// Completed is set on the step in which the countdown ran out.
	Completed bool
	// FlipDone is set on the step in which a flip finished.
	FlipDone bool
	// Err holds the first request that failed during this step.
	Err error
}

// Driver owns the whole simulation and advances it once per frame. All of
// its state is mutated by Step; other goroutines talk to it through Submit.
type Driver struct {
	opts     Options
	clock    *Clock
	stream   *Stream
	flip     *Flip
	geom     Geometry
	duration time.Duration
	surfaceW int
	surfaceH int
	requests chan Request
}

// NewDriver builds a driver whose clock is loaded with opts.Duration and
// paused.
func NewDriver(opts Options) (*Driver, error) {
	clock, err := NewClock(opts.Duration)
	if err != nil {
		return nil, err
	}
	if opts.WidthRatio <= 0 {
		opts.WidthRatio = 0.6
	}
	if opts.HeightRatio <= 0 {
		opts.HeightRatio = 0.8
	}
	if opts.FlipDuration <= 0 {
		opts.FlipDuration = DefaultFlipDuration
	}
	if opts.Stream == (StreamConfig{}) {
		opts.Stream = DefaultStreamConfig()
	}
	geom := FitGeometry(opts.SurfaceWidth, opts.SurfaceHeight, opts.WidthRatio, opts.HeightRatio)
	return &Driver{
		opts:     opts,
		clock:    clock,
		stream:   NewStream(opts.Stream, geom, opts.Rand),
		flip:     NewFlip(opts.FlipDuration, opts.FlipCurve),
		geom:     geom,
		duration: opts.Duration,
		surfaceW: opts.SurfaceWidth,
		surfaceH: opts.SurfaceHeight,
		requests: make(chan Request, requestQueueSize),
	}, nil
}

// Submit queues a request for the next Step. It never blocks and is safe to
// call from any goroutine.
func (d *Driver) Submit(r Request) error {
	select {
	case d.requests <- r:
		return nil
	default:
		return fmt.Errorf("submit %v: %w", r.Kind, ErrQueueFull)
	}
}

// Step applies pending requests and advances the simulation by dt.
func (d *Driver) Step(dt time.Duration) Frame {
	var f Frame
	f.Err = d.drain()

	if d.flip.Active() {
		if d.flip.Step(dt) {
			d.finishFlip()
			f.FlipDone = true
		}
	} else if !d.clock.Paused() {
		fraction := d.clock.Advance(dt)
		d.stream.Update(dt.Seconds(), fraction < 1)
		f.Completed = d.clock.Done()
	}

	d.fill(&f)
	return f
}

// Run drives Step from ticks until ctx is cancelled. Each tick's delta from
// the previous one is the frame's dt; the first tick has dt zero.
func (d *Driver) Run(ctx context.Context, ticks <-chan time.Time, present func(Frame)) error {
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			var dt time.Duration
			if !last.IsZero() {
				dt = now.Sub(last)
			}
			last = now
			f := d.Step(dt)
			if present != nil {
				present(f)
			}
		}
	}
}

func (d *Driver) drain() error {
	var first error
	for {
		select {
		case r := <-d.requests:
			if err := d.apply(r); err != nil && first == nil {
				first = err
			}
		default:
			return first
		}
	}
}

func (d *Driver) apply(r Request) error {
	switch r.Kind {
	case RequestStart:
		if d.flip.Active() {
			return nil
		}
		if err := d.clock.Start(r.Duration); err != nil {
			return err
		}
		d.duration = r.Duration
	case RequestPause:
		d.clock.Pause()
	case RequestResume:
		if !d.flip.Active() {
			d.clock.Resume()
		}
	case RequestReset:
		d.beginFlip()
	case RequestResize:
		d.resize(r.Width, r.Height)
	case RequestSetDuration:
		if r.Duration <= 0 {
			return fmt.Errorf("set duration %v: %w", r.Duration, ErrInvalidDuration)
		}
		d.duration = r.Duration
	}
	return nil
}

func (d *Driver) beginFlip() {
	if !d.flip.Begin() {
		return
	}
	d.clock.Pause()
	d.clock.SetFlipping(true)
}

func (d *Driver) finishFlip() {
	d.stream.Clear()
	d.clock.SetFlipping(false)
	// d.duration is always positive, so Start cannot fail here.
	_ = d.clock.Start(d.duration)
	if !d.opts.AutoStartAfterFlip {
		d.clock.Pause()
	}
}

func (d *Driver) resize(w, h int) {
	if w == d.surfaceW && h == d.surfaceH {
		return
	}
	d.surfaceW, d.surfaceH = w, h
	d.geom = FitGeometry(w, h, d.opts.WidthRatio, d.opts.HeightRatio)
	d.stream.SetGeometry(d.geom)
}

func (d *Driver) fill(f *Frame) {
	f.Remaining = d.clock.Remaining()
	f.Total = d.clock.Total()
	f.Seconds = int(f.Remaining / time.Second)
	f.Fraction = d.clock.Fraction()
	f.Angle = d.flip.Angle()
	f.Paused = d.clock.Paused()
	f.Flipping = d.flip.Active()
	f.Geometry = d.geom
	f.SurfaceW = d.surfaceW
	f.SurfaceH = d.surfaceH
	f.Grains = d.stream.Grains()
}

// Clock, Stream and Flip expose the components for inspection.
func (d *Driver) Clock() *Clock { return d.clock }
func (d *Driver) Stream() *Stream { return d.stream }
func (d *Driver) Flip() *Flip { return d.flip }

// Duration is the countdown length the next flip restarts with.
func (d *Driver) Duration() time.Duration { return d.duration }
