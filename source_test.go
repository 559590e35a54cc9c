// SPDX-License-Identifier: EPL-2.0

package soloud

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/soloud/internal/codec/wav"
	"github.com/ik5/soloud/internal/native"
)

func wavBytes(t *testing.T, sampleRate, frames int, value int16) []byte {
	t.Helper()

	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = value
	}
	buf := new(bytes.Buffer)
	require.NoError(t, wav.WriteWAV16(buf, sampleRate, samples))
	return buf.Bytes()
}

func wavFile(t *testing.T, sampleRate, frames int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, wavBytes(t, sampleRate, frames, 1000), 0o600))
	return path
}

// Not parallel: shrinks the process-wide arena.
func TestConstructor_ArenaExhausted(t *testing.T) {
	prev := native.SetCapacity(native.LiveObjects())
	defer native.SetCapacity(prev)

	n, err := NewNoise()
	assert.Nil(t, n)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ClassUnknown, e.Class)
	assert.Contains(t, e.Error(), "Noise")
}

// Not parallel: swaps the package logger.
func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	tone, err := NewTone()
	require.NoError(t, err)
	require.Error(t, tone.SetFrequency(-1))
	require.NoError(t, tone.Close())

	out := buf.String()
	assert.Contains(t, out, "handle acquired")
	assert.Contains(t, out, "op=Tone.SetFrequency")
	assert.Contains(t, out, "code=1")
	assert.Contains(t, out, "handle released")
}

func TestConstructors_NonNullHandle(t *testing.T) {
	t.Parallel()

	noise, err := NewNoise()
	require.NoError(t, err)
	defer noise.Close()
	tone, err := NewTone()
	require.NoError(t, err)
	defer tone.Close()
	stream, err := NewWavStream()
	require.NoError(t, err)
	defer stream.Close()
	sample, err := NewWav()
	require.NoError(t, err)
	defer sample.Close()

	for _, s := range []AudioSource{noise, tone, stream, sample} {
		assert.NotEqual(t, native.Null, s.sourceHandle())
		assert.True(t, native.IsLive(s.sourceHandle()))
	}
}

func TestClose_ReleasesOnce(t *testing.T) {
	t.Parallel()

	n, err := NewNoise()
	require.NoError(t, err)
	raw := n.raw()

	require.NoError(t, n.Close())
	assert.False(t, native.IsLive(raw))
	assert.NoError(t, n.Close(), "second Close is a no-op")

	assert.PanicsWithValue(t, "soloud: use of closed or uninitialized Noise", func() {
		n.SetVolume(1)
	})
}

func TestZeroValue_Panics(t *testing.T) {
	t.Parallel()

	var w WavStream
	assert.Panics(t, func() { _ = w.LoadMem([]byte{1}) })
	assert.Panics(t, func() { w.Stop() })
}

func TestSetLoopPoint_RoundTrip(t *testing.T) {
	t.Parallel()

	w, err := NewWavStream()
	require.NoError(t, err)
	defer w.Close()

	assert.Zero(t, w.LoopPoint())
	w.SetLoopPoint(2.5)
	assert.Equal(t, 2.5, w.LoopPoint())
}

func TestSetFilter_LastWriteWins(t *testing.T) {
	t.Parallel()

	noise, err := NewNoise()
	require.NoError(t, err)
	defer noise.Close()
	a, err := NewBassboostFilter()
	require.NoError(t, err)
	defer a.Close()
	b, err := NewEchoFilter()
	require.NoError(t, err)
	defer b.Close()

	noise.SetFilter(2, a)
	noise.SetFilter(5, a)
	noise.SetFilter(5, b)
	assert.Equal(t, b.filterHandle(), native.AudioSourceGetFilter(noise.raw(), 5))
	assert.Equal(t, a.filterHandle(), native.AudioSourceGetFilter(noise.raw(), 2))

	noise.SetFilter(5, nil)
	assert.Equal(t, native.Null, native.AudioSourceGetFilter(noise.raw(), 5))
	assert.Equal(t, a.filterHandle(), native.AudioSourceGetFilter(noise.raw(), 2), "other slots untouched")
}

func TestSetFilter_TypedNilDetaches(t *testing.T) {
	t.Parallel()

	noise, err := NewNoise()
	require.NoError(t, err)
	defer noise.Close()
	bass, err := NewBassboostFilter()
	require.NoError(t, err)
	defer bass.Close()
	echo, err := NewEchoFilter()
	require.NoError(t, err)
	defer echo.Close()

	noise.SetFilter(5, bass)
	noise.SetFilter(6, echo)

	var noBass *BassboostFilter
	var noEcho *EchoFilter
	assert.NotPanics(t, func() {
		noise.SetFilter(5, noBass)
		noise.SetFilter(6, noEcho)
	})
	assert.Equal(t, native.Null, native.AudioSourceGetFilter(noise.raw(), 5))
	assert.Equal(t, native.Null, native.AudioSourceGetFilter(noise.raw(), 6))

	var noCollider *Collider
	var noAttenuator *Attenuator
	assert.NotPanics(t, func() {
		noise.Set3DCollider(noCollider)
		noise.Set3DAttenuator(noAttenuator)
	})
}

func TestLoad_EndToEnd(t *testing.T) {
	t.Parallel()

	w, err := NewWavStream()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Load(wavFile(t, 8000, 8000)))
	assert.InDelta(t, 1.0, w.Length(), 1e-9)

	err = w.Load(filepath.Join(t.TempDir(), "missing.wav"))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ClassInternal, e.Class)
	assert.Equal(t, FileNotFound, e.Kind)
}

func TestLoad_EmbeddedNulNeverReachesEngine(t *testing.T) {
	t.Parallel()

	w, err := NewWavStream()
	require.NoError(t, err)
	defer w.Close()

	calls := 0
	next := w.loadPath
	w.loadPath = func(h native.Handle, path []byte) int32 {
		calls++
		return next(h, path)
	}

	err = w.Load("clip\x00.wav")
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ClassEncoding, e.Class)
	assert.ErrorIs(t, err, ErrEmbeddedNul)
	assert.Contains(t, err.Error(), "position: 4")
	assert.Zero(t, calls)
}

func TestLoadMem_CallerKeepsBuffer(t *testing.T) {
	t.Parallel()

	w, err := NewWav()
	require.NoError(t, err)
	defer w.Close()

	data := wavBytes(t, 8000, 800, 1000)
	orig := bytes.Clone(data)

	require.NoError(t, w.LoadMem(data))
	assert.Equal(t, orig, data, "LoadMem must not touch the caller's bytes")

	// still valid and mutable
	for i := range data {
		data[i] = 0xff
	}
	assert.InDelta(t, 0.1, w.Length(), 1e-9)
}

func TestLoadMemUnsafe_Ownership(t *testing.T) {
	t.Parallel()

	w, err := NewWavStream()
	require.NoError(t, err)
	defer w.Close()

	data := wavBytes(t, 8000, 80, 1000)
	require.NoError(t, w.LoadMemUnsafe(data, false, false))
	assert.False(t, native.WavStreamOwnsData(w.raw()))

	require.NoError(t, w.LoadMem(data))
	assert.True(t, native.WavStreamOwnsData(w.raw()))
}

func TestLoadMem_Errors(t *testing.T) {
	t.Parallel()

	w, err := NewWavStream()
	require.NoError(t, err)
	defer w.Close()

	assert.ErrorIs(t, w.LoadMem(nil), InvalidParameter)
	assert.ErrorIs(t, w.LoadMem([]byte("not audio at all")), FileLoadFailed)
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	w, err := NewWavStream()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, LoadFrom(w, bytes.NewReader(wavBytes(t, 8000, 4000, 1))))
	assert.InDelta(t, 0.5, w.Length(), 1e-9)

	boom := errors.New("disk on fire")
	err = LoadFrom(w, iotest.ErrReader(boom))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ClassIO, e.Class)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "disk on fire", err.Error())
}

func TestLoadableSources(t *testing.T) {
	t.Parallel()

	var _ LoadableSource = (*WavStream)(nil)
	var _ LoadableSource = (*Wav)(nil)
	var _ AudioSource = (*Noise)(nil)
	var _ AudioSource = (*Tone)(nil)

	path := wavFile(t, 16000, 1600)
	for _, ctor := range []func() (LoadableSource, error){
		func() (LoadableSource, error) { return NewWavStream() },
		func() (LoadableSource, error) { return NewWav() },
	} {
		src, err := ctor()
		require.NoError(t, err)
		assert.NoError(t, src.Load(path))
		assert.NoError(t, src.Close())
	}
}

func TestTone_SetFrequency(t *testing.T) {
	t.Parallel()

	tone, err := NewTone()
	require.NoError(t, err)
	defer tone.Close()

	assert.NoError(t, tone.SetFrequency(1000))
	assert.ErrorIs(t, tone.SetFrequency(0), InvalidParameter)
	assert.ErrorIs(t, tone.SetFrequency(30000), InvalidParameter)
}

func TestSetters_ForwardUnvalidated(t *testing.T) {
	t.Parallel()

	n, err := NewNoise()
	require.NoError(t, err)
	defer n.Close()

	// out of range values are accepted silently
	n.Set3DMinMaxDistance(-5, -10)
	n.Set3DAttenuation(AttenuationModel(99), -1)
	n.Set3DDopplerFactor(-3)
	n.Set3DDistanceDelay(-1)
	n.SetVolume(-2)
	n.SetInaudibleBehavior(true, true)
	n.Set3DListenerRelative(true)
	n.SetType(NoiseType(77))
	n.Stop()
	assert.True(t, native.IsLive(n.raw()))
}

func TestTextBoundary(t *testing.T) {
	t.Parallel()

	b, err := cString("a/b.wav")
	require.NoError(t, err)
	assert.Equal(t, "a/b.wav", native.GoString(b))

	_, err = cString(strings.Repeat("x", 10) + "\x00")
	assert.ErrorIs(t, err, ErrEmbeddedNul)
}
