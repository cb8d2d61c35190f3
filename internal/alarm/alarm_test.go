package alarm

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("stream never ended")
	return nil
}

func TestSineLengthAndRange(t *testing.T) {
	s := newSine(440, 100*time.Millisecond, SampleRate)
	samples := drain(t, s)
	assert.Len(t, samples, SampleRate.N(100*time.Millisecond))
	for _, v := range samples {
		assert.LessOrEqual(t, v[0], 1.0)
		assert.GreaterOrEqual(t, v[0], -1.0)
		assert.Equal(t, v[0], v[1])
	}
	assert.NoError(t, s.Err())
}

func TestEnvelopeFadesInAndOut(t *testing.T) {
	d := 100 * time.Millisecond
	env := newEnvelope(newSine(440, d, SampleRate), d, 10*time.Millisecond, 10*time.Millisecond, SampleRate)
	samples := drain(t, env)
	require.NotEmpty(t, samples)
	assert.Equal(t, 0.0, samples[0][0])
	assert.InDelta(t, 0, samples[len(samples)-1][0], 0.01)
}

func TestChimeIsFinite(t *testing.T) {
	samples := drain(t, Chime(1))
	assert.Len(t, samples, len(chimeNotes)*SampleRate.N(chimeNote))

	var peak float64
	for _, v := range samples {
		if v[0] > peak {
			peak = v[0]
		}
	}
	assert.Greater(t, peak, 0.1)
	assert.LessOrEqual(t, peak, 1.0)
}

func TestChimeMuted(t *testing.T) {
	for _, v := range drain(t, Chime(0)) {
		assert.Equal(t, 0.0, v[0])
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load("alarm.ogg")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadResamplesWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bell.WAV")
	f, err := os.Create(path)
	require.NoError(t, err)

	rate := beep.SampleRate(22050)
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, newSine(440, 100*time.Millisecond, rate), format))
	require.NoError(t, f.Close())

	buf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SampleRate, buf.Format().SampleRate)
	assert.InDelta(t, SampleRate.N(100*time.Millisecond), buf.Len(), 16)
}
