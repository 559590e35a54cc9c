// SPDX-License-Identifier: EPL-2.0

package native

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveform_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		shape int32
		p     float64
		want  float64
	}{
		{"square high", WaveSquare, 0.25, 1},
		{"square low", WaveSquare, 0.75, -1},
		{"saw start", WaveSaw, 0, -1},
		{"saw mid", WaveSaw, 0.5, 0},
		{"sin peak", WaveSin, 0.25, 1},
		{"triangle start", WaveTriangle, 0, -1},
		{"triangle peak", WaveTriangle, 0.5, 1},
		{"bounce peak", WaveBounce, 0.5, 1},
		{"bounce floor", WaveBounce, 0, -1},
		{"jaws silent", WaveJaws, 0.5, 0},
		{"humps silent", WaveHumps, 0.75, 0},
		{"unknown is square", 99, 0.25, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Waveform(tt.shape, tt.p), 1e-9)
		})
	}
}

func TestWaveform_FourierBounded(t *testing.T) {
	t.Parallel()

	for _, shape := range []int32{WaveFSquare, WaveFSaw} {
		for i := range 100 {
			v := Waveform(shape, float64(i)/100)
			assert.LessOrEqual(t, math.Abs(v), 1.0)
		}
	}
	assert.Greater(t, Waveform(WaveFSquare, 0.25), 0.8)
}

func TestToneSetFrequency(t *testing.T) {
	t.Parallel()

	h := ToneCreate()
	require.NotEqual(t, Null, h)
	defer ToneDestroy(h)

	tests := []struct {
		hz   float32
		want int32
	}{
		{440, StatusOK},
		{0, StatusInvalidParameter},
		{-5, StatusInvalidParameter},
		{22050, StatusInvalidParameter},
		{float32(math.NaN()), StatusInvalidParameter},
		{22049, StatusOK},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToneSetFrequency(h, tt.hz), "hz=%v", tt.hz)
	}
	assert.Equal(t, StatusInvalidParameter, ToneSetFrequency(Null, 440))
}

func TestToneStream_Period(t *testing.T) {
	t.Parallel()

	h := ToneCreate()
	defer ToneDestroy(h)
	ToneSetWaveform(h, WaveSin)
	require.Equal(t, StatusOK, ToneSetFrequency(h, GeneratorRate/100))

	tn, ok := lookup[*tone](h)
	require.True(t, ok)
	src, err := tn.open()
	require.NoError(t, err)

	buf := make([]float32, 200)
	n, err := src.ReadSamples(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	assert.Equal(t, 1, src.Channels())
	assert.InDelta(t, 0, buf[0], 1e-6)
	assert.InDelta(t, 1, buf[25], 1e-3)
	assert.InDelta(t, buf[0], buf[100], 1e-3, "one period is 100 samples")
}

func TestNoise_ColorsStayBounded(t *testing.T) {
	t.Parallel()

	h := NoiseCreate()
	defer NoiseDestroy(h)

	for _, color := range []int32{NoiseWhite, NoisePink, NoiseBrownish, NoiseBlueish} {
		NoiseSetType(h, color)
		n, ok := lookup[*noise](h)
		require.True(t, ok)
		src, err := n.open()
		require.NoError(t, err)

		buf := make([]float32, 4096)
		_, err = src.ReadSamples(buf)
		require.NoError(t, err)

		var energy float64
		for _, v := range buf {
			assert.LessOrEqual(t, math.Abs(float64(v)), 3.0, "color %d", color)
			energy += float64(v * v)
		}
		assert.Positive(t, energy, "color %d is silent", color)
	}
}

func TestNoiseSetType_IgnoresUnknown(t *testing.T) {
	t.Parallel()

	h := NoiseCreate()
	defer NoiseDestroy(h)

	NoiseSetType(h, NoisePink)
	NoiseSetType(h, 42)

	n, _ := lookup[*noise](h)
	assert.Equal(t, NoisePink, n.color)
}
