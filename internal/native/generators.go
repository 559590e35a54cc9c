// SPDX-License-Identifier: EPL-2.0

package native

import (
	"math"
	"math/rand/v2"

	"github.com/ik5/soloud/internal/pcm"
)

// GeneratorRate is the sample rate generators render at. The engine
// resamples when it runs at another rate.
const GeneratorRate = 44100

// fourierHarmonics is how many partials the band-limited waveforms sum.
const fourierHarmonics = 8

type noise struct {
	sourceBase
	color int32
	seed  uint64
}

func (n *noise) open() (pcm.Source, error) {
	n.mu.Lock()
	color, seed := n.color, n.seed
	n.seed++
	n.mu.Unlock()

	return &noiseStream{
		color: color,
		rng:   rand.New(rand.NewPCG(seed, 0x5eed)),
	}, nil
}

func NoiseCreate() Handle {
	return objects.insert(&noise{sourceBase: newSourceBase(), seed: 1})
}

func NoiseDestroy(h Handle) {
	if _, ok := lookup[*noise](h); ok {
		destroySource(h)
	}
}

// NoiseSetType changes the color of voices started afterwards. Unknown
// colors are ignored.
func NoiseSetType(h Handle, color int32) {
	n, ok := lookup[*noise](h)
	if !ok || color < NoiseWhite || color > NoiseBlueish {
		return
	}
	n.mu.Lock()
	n.color = color
	n.mu.Unlock()
}

// noiseStream is an endless mono noise source.
type noiseStream struct {
	color int32
	rng   *rand.Rand

	// pink filter taps
	b0, b1, b2 float64
	// brownish integrator and blueish differentiator state
	prev float64
}

func (s *noiseStream) SampleRate() int { return GeneratorRate }
func (s *noiseStream) Channels() int   { return 1 }
func (s *noiseStream) Close() error    { return nil }

func (s *noiseStream) ReadSamples(dst []float32) (int, error) {
	for i := range dst {
		dst[i] = float32(s.next())
	}
	return len(dst), nil
}

func (s *noiseStream) next() float64 {
	white := s.rng.Float64()*2 - 1

	switch s.color {
	case NoisePink:
		s.b0 = 0.99765*s.b0 + white*0.0990460
		s.b1 = 0.96300*s.b1 + white*0.2965164
		s.b2 = 0.57000*s.b2 + white*1.0526913
		return (s.b0 + s.b1 + s.b2 + white*0.1848) * 0.25
	case NoiseBrownish:
		s.prev = clamp64(s.prev*0.98+white*0.1, -1, 1)
		return s.prev * 3
	case NoiseBlueish:
		out := (white - s.prev) * 0.5
		s.prev = white
		return out
	default:
		return white
	}
}

type tone struct {
	sourceBase
	waveform  int32
	frequency float32
}

func (t *tone) open() (pcm.Source, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return &toneStream{
		waveform: t.waveform,
		step:     float64(t.frequency) / GeneratorRate,
	}, nil
}

// ToneCreate makes a 440 Hz square wave generator.
func ToneCreate() Handle {
	return objects.insert(&tone{
		sourceBase: newSourceBase(),
		waveform:   WaveSquare,
		frequency:  440,
	})
}

func ToneDestroy(h Handle) {
	if _, ok := lookup[*tone](h); ok {
		destroySource(h)
	}
}

// ToneSetWaveform changes the shape of voices started afterwards. Unknown
// shapes are ignored.
func ToneSetWaveform(h Handle, waveform int32) {
	t, ok := lookup[*tone](h)
	if !ok || waveform < WaveSquare || waveform > WaveFSaw {
		return
	}
	t.mu.Lock()
	t.waveform = waveform
	t.mu.Unlock()
}

// ToneSetFrequency accepts frequencies strictly between 0 and the Nyquist
// limit of GeneratorRate.
func ToneSetFrequency(h Handle, hz float32) int32 {
	t, ok := lookup[*tone](h)
	if !ok {
		return StatusInvalidParameter
	}
	if !(hz > 0 && hz < GeneratorRate/2) {
		return StatusInvalidParameter
	}
	t.mu.Lock()
	t.frequency = hz
	t.mu.Unlock()
	return StatusOK
}

// toneStream is an endless mono oscillator.
type toneStream struct {
	waveform int32
	step     float64
	phase    float64
}

func (s *toneStream) SampleRate() int { return GeneratorRate }
func (s *toneStream) Channels() int   { return 1 }
func (s *toneStream) Close() error    { return nil }

func (s *toneStream) ReadSamples(dst []float32) (int, error) {
	for i := range dst {
		dst[i] = float32(Waveform(s.waveform, s.phase))
		s.phase += s.step
		if s.phase >= 1 {
			s.phase -= math.Floor(s.phase)
		}
	}
	return len(dst), nil
}

// Waveform evaluates shape at phase p in [0,1). Output is in [-1,1].
func Waveform(shape int32, p float64) float64 {
	switch shape {
	case WaveSaw:
		return 2*p - 1
	case WaveSin:
		return math.Sin(2 * math.Pi * p)
	case WaveTriangle:
		if p < 0.5 {
			return 4*p - 1
		}
		return 3 - 4*p
	case WaveBounce:
		return 2*math.Abs(math.Sin(math.Pi*p)) - 1
	case WaveJaws:
		if p < 0.25 {
			return math.Sin(2 * math.Pi * p)
		}
		return 0
	case WaveHumps:
		if p < 0.5 {
			return math.Sin(2 * math.Pi * p)
		}
		return 0
	case WaveFSquare:
		var sum float64
		for k := 1; k <= 2*fourierHarmonics; k += 2 {
			sum += math.Sin(2*math.Pi*float64(k)*p) / float64(k)
		}
		return clamp64(sum*4/math.Pi, -1, 1)
	case WaveFSaw:
		var sum float64
		for k := 1; k <= fourierHarmonics; k++ {
			sum += math.Sin(2*math.Pi*float64(k)*p) / float64(k)
		}
		return clamp64(-sum*2/math.Pi, -1, 1)
	default:
		if p < 0.5 {
			return 1
		}
		return -1
	}
}

func clamp64(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
