// SPDX-License-Identifier: EPL-2.0

package soloud

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, flags Flags, rate uint32) *Soloud {
	t.Helper()

	s, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Init(flags, WithSampleRate(rate), WithBufferSize(256)))
	return s
}

func peak(buf []float32) float64 {
	var p float64
	for _, v := range buf {
		p = max(p, math.Abs(float64(v)))
	}
	return p
}

func TestSoloud_Init(t *testing.T) {
	t.Parallel()

	s, err := New()
	require.NoError(t, err)
	defer s.Close()

	assert.ErrorIs(t, s.Mix(make([]float32, 4)), InvalidParameter, "mixing before Init")
	assert.ErrorIs(t, s.Init(Flags(1<<9)), InvalidParameter)

	require.NoError(t, s.Init(0))
	assert.EqualValues(t, 44100, s.SampleRate())
	assert.EqualValues(t, 2048, s.BufferSize())
	assert.EqualValues(t, 2, s.Channels())

	require.NoError(t, s.Init(ClipRoundoff, WithSampleRate(22050)))
	assert.EqualValues(t, 22050, s.SampleRate())
}

func TestSoloud_PlayAndStop(t *testing.T) {
	t.Parallel()

	s := newEngine(t, 0, 44100)
	tone, err := NewTone()
	require.NoError(t, err)
	defer tone.Close()
	tone.SetVolume(0.25)

	v := s.Play(tone)
	require.NotZero(t, v)
	assert.True(t, s.IsValidVoice(v))
	assert.EqualValues(t, 1, s.ActiveVoiceCount())
	assert.EqualValues(t, 1, s.VoiceCount())

	buf, err := s.Render(0.01)
	require.NoError(t, err)
	assert.Len(t, buf, 2*441)
	assert.InDelta(t, 0.25, peak(buf), 1e-6)

	tone.Stop()
	assert.False(t, s.IsValidVoice(v))
	buf, err = s.Render(0.01)
	require.NoError(t, err)
	assert.Zero(t, peak(buf))
}

func TestSoloud_StopAllAndGlobalVolume(t *testing.T) {
	t.Parallel()

	s := newEngine(t, 0, 44100)
	tone, err := NewTone()
	require.NoError(t, err)
	defer tone.Close()

	s.SetGlobalVolume(0.5)
	assert.Equal(t, float32(0.5), s.GlobalVolume())

	a := s.Play(tone)
	b := s.Play(tone)
	buf, err := s.Render(0.005)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, peak(buf), 1e-6, "two square voices at half volume")

	s.Stop(a)
	assert.False(t, s.IsValidVoice(a))
	assert.True(t, s.IsValidVoice(b))

	s.StopAll()
	assert.Zero(t, s.VoiceCount())
}

func TestSoloud_PlayWavMemory(t *testing.T) {
	t.Parallel()

	s := newEngine(t, 0, 8000)
	w, err := NewWav()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.LoadMem(wavBytes(t, 8000, 100, 16384)))

	v := s.Play(w)
	require.NotZero(t, v)
	buf := make([]float32, 400)
	require.NoError(t, s.Mix(buf))
	assert.InDelta(t, 0.5, buf[0], 1e-4)
	assert.Zero(t, buf[300])
	assert.False(t, s.IsValidVoice(v), "finished voice is released")
}

func TestSoloud_PlayWithoutDataFails(t *testing.T) {
	t.Parallel()

	s := newEngine(t, 0, 8000)
	w, err := NewWavStream()
	require.NoError(t, err)
	defer w.Close()

	assert.Zero(t, s.Play(w))
}

func TestSoloud_SetFilterParameter(t *testing.T) {
	t.Parallel()

	s := newEngine(t, 0, 44100)
	tone, err := NewTone()
	require.NoError(t, err)
	defer tone.Close()
	echo, err := NewEchoFilter()
	require.NoError(t, err)
	defer echo.Close()

	tone.SetFilter(1, echo)
	v := s.Play(tone)

	assert.NoError(t, s.SetFilterParameter(v, 1, EchoWet, 0.5))
	assert.NoError(t, s.SetFilterParameter(v, 1, EchoDecay, 7), "clamped")
	assert.ErrorIs(t, s.SetFilterParameter(v, 0, EchoWet, 0.5), InvalidParameter, "empty slot")
	assert.ErrorIs(t, s.SetFilterParameter(v, 1, EchoAttr(9), 0.5), InvalidParameter)
	assert.ErrorIs(t, s.SetFilterParameter(Voice(12345), 1, EchoWet, 0.5), InvalidParameter)
}

func TestSoloud_RenderRejectsBadDuration(t *testing.T) {
	t.Parallel()

	s := newEngine(t, 0, 8000)
	for _, d := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := s.Render(d)
		assert.ErrorIs(t, err, InvalidParameter, "duration %v", d)
	}
}

func TestSoloud_Waveform(t *testing.T) {
	t.Parallel()

	plain := newEngine(t, 0, 8000)
	assert.Nil(t, plain.Waveform())

	s := newEngine(t, EnableVisualization, 8000)
	tone, err := NewTone()
	require.NoError(t, err)
	defer tone.Close()
	s.Play(tone)

	_, err = s.Render(0.1)
	require.NoError(t, err)
	wave := s.Waveform()
	require.Len(t, wave, 256)
	assert.Positive(t, peak(wave))
}

func TestSoloud_Play3DWithCollider(t *testing.T) {
	t.Parallel()

	s := newEngine(t, 0, 44100)
	tone, err := NewTone()
	require.NoError(t, err)
	defer tone.Close()

	var calls atomic.Int32
	c, err := NewCollider(func(x, y, z float32) float32 {
		calls.Add(1)
		return 0.5
	})
	require.NoError(t, err)
	defer c.Close()

	tone.Set3DAttenuation(NoAttenuation, 1)
	tone.Set3DCollider(c)
	v := s.Play3D(tone, 3, 0, 0)
	require.NotZero(t, v)

	buf, err := s.Render(0.01)
	require.NoError(t, err)
	assert.Positive(t, calls.Load())
	assert.InDelta(t, 0.5, peak(buf), 1e-3)

	tone.Set3DCollider(nil)
}

func TestSoloud_Play3DAttenuatorKills(t *testing.T) {
	t.Parallel()

	s := newEngine(t, 0, 44100)
	tone, err := NewTone()
	require.NoError(t, err)
	defer tone.Close()

	a, err := NewAttenuator(func(distance, minDistance, maxDistance, rolloff float32) float32 {
		return 0
	})
	require.NoError(t, err)
	defer a.Close()

	tone.Set3DAttenuator(a)
	tone.SetInaudibleBehavior(false, true)
	v := s.Play3D(tone, 1, 1, 1)
	require.NotZero(t, v)

	_, err = s.Render(0.01)
	require.NoError(t, err)
	assert.False(t, s.IsValidVoice(v))
}

func TestSoloud_CloseStopsVoices(t *testing.T) {
	t.Parallel()

	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.Init(0))
	noise, err := NewNoise()
	require.NoError(t, err)
	defer noise.Close()

	require.NotZero(t, s.Play(noise))
	require.NoError(t, s.Close())
	assert.Panics(t, func() { s.VoiceCount() })

	// the source outlives the engine
	noise.SetVolume(0.3)
}
