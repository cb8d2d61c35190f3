package hourglass

import "math/rand/v2"

// Stream defaults.
const (
	DefaultBatchSize  = 3
	DefaultGravity    = 20.0
	DefaultCullOffset = 3.0
	DefaultMaxGrains  = 1024
	DefaultDrift      = 0.05

	// driftFrameRate converts the per-frame drift of the classic animation
	// into a per-second velocity.
	driftFrameRate = 60.0
)

// Grain is one falling particle of sand. Coordinates are relative to the
// shared apex of the chambers; negative Y is above it.
type Grain struct {
	X, VX float64
	Y, VY float64
	// Tint is a color jitter in [-1, 1).
	Tint float64
}

// StreamConfig tunes the particle stream.
type StreamConfig struct {
	BatchSize  int
	Gravity    float64
	CullOffset float64
	MaxGrains  int
	// Drift bounds the per-frame horizontal nudge at 60fps.
	Drift float64
}

// DefaultStreamConfig returns the stock stream tuning.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		BatchSize:  DefaultBatchSize,
		Gravity:    DefaultGravity,
		CullOffset: DefaultCullOffset,
		MaxGrains:  DefaultMaxGrains,
		Drift:      DefaultDrift,
	}
}

// Stream owns the live set of falling grains.
type Stream struct {
	cfg    StreamConfig
	geom   Geometry
	rng    *rand.Rand
	grains []Grain
}

// NewStream creates an empty stream. A nil rng gets a randomly seeded one.
func NewStream(cfg StreamConfig, geom Geometry, rng *rand.Rand) *Stream {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.MaxGrains <= 0 {
		cfg.MaxGrains = DefaultMaxGrains
	}
	return &Stream{
		cfg:    cfg,
		geom:   geom,
		rng:    rng,
		grains: make([]Grain, 0, cfg.MaxGrains),
	}
}

// SetGeometry changes where new grains spawn. Live grains keep their
// positions.
func (s *Stream) SetGeometry(g Geometry) { s.geom = g }

// Update spawns a batch while the top chamber still holds sand, then moves
// every grain and drops the ones that reached the neck.
func (s *Stream) Update(dt float64, topNonEmpty bool) {
	if topNonEmpty {
		s.spawn(s.cfg.BatchSize)
	}

	limit := -s.cfg.CullOffset
	live := s.grains[:0]
	for _, g := range s.grains {
		g.Y += g.VY * dt
		g.X += g.VX * dt
		g.VY += s.cfg.Gravity * dt
		if g.Y > limit {
			continue
		}
		live = append(live, g)
	}
	s.grains = live
}

func (s *Stream) spawn(n int) {
	if room := s.cfg.MaxGrains - len(s.grains); n > room {
		n = room
	}
	for i := 0; i < n; i++ {
		s.grains = append(s.grains, Grain{
			VX:   (s.rng.Float64() - 0.5) * 2 * s.cfg.Drift * driftFrameRate,
			Y:    -s.geom.Half(),
			VY:   s.rng.Float64(),
			Tint: s.rng.Float64()*2 - 1,
		})
	}
}

// Clear drops every live grain.
func (s *Stream) Clear() { s.grains = s.grains[:0] }

// Len reports the number of live grains.
func (s *Stream) Len() int { return len(s.grains) }

// Grains exposes the live set. The slice is only valid until the next
// Update or Clear.
func (s *Stream) Grains() []Grain { return s.grains }
