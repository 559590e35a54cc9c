// SPDX-License-Identifier: EPL-2.0

// Package pcmtest provides synthetic sample sources for tests.
package pcmtest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by a Source built with FailAfter.
var ErrInjected = errors.New("pcmtest: injected read failure")

// Source generates totalFrames frames from a waveform function.
// It satisfies pcm.Source without importing it.
type Source struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	failAfter   int
	closed      bool
	waveform    func(frame, channel int) float32
}

func New(sampleRate, channels, totalFrames int, waveform func(frame, channel int) float32) *Source {
	return &Source{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		failAfter:   -1,
		waveform:    waveform,
	}
}

// Silent generates zeros.
func Silent(sampleRate, channels, totalFrames int) *Source {
	return Constant(sampleRate, channels, totalFrames, 0)
}

// Constant generates value on every channel.
func Constant(sampleRate, channels, totalFrames int, value float32) *Source {
	return New(sampleRate, channels, totalFrames, func(int, int) float32 { return value })
}

// Sine generates a sine wave of frequency Hz on every channel.
func Sine(sampleRate, channels, totalFrames int, frequency float64) *Source {
	return New(sampleRate, channels, totalFrames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// FailAfter makes ReadSamples return ErrInjected once frames frames were served.
func (s *Source) FailAfter(frames int) *Source {
	s.failAfter = frames
	return s
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Closed() bool    { return s.closed }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Reset rewinds the generator.
func (s *Source) Reset() {
	s.generated = 0
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.failAfter >= 0 && s.generated >= s.failAfter {
		return 0, ErrInjected
	}
	if s.generated >= s.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/s.channels, s.totalFrames-s.generated)
	for f := range frames {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.waveform(s.generated+f, ch)
		}
	}
	s.generated += frames

	if s.generated >= s.totalFrames {
		return frames * s.channels, io.EOF
	}
	return frames * s.channels, nil
}
