// SPDX-License-Identifier: EPL-2.0

package pcm

import "io"

// SliceSource serves samples from memory. It is how mixed engine output is
// handed to MonoMixer and the WAV writer.
type SliceSource struct {
	data       []float32
	sampleRate int
	channels   int
	pos        int
}

func NewSliceSource(data []float32, sampleRate, channels int) *SliceSource {
	return &SliceSource{data: data, sampleRate: sampleRate, channels: channels}
}

func (s *SliceSource) SampleRate() int { return s.sampleRate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) Close() error    { return nil }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	// whole frames only
	n := min(len(dst), len(s.data)-s.pos)
	n -= n % s.channels
	copy(dst, s.data[s.pos:s.pos+n])
	s.pos += n

	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}

// ReadAll drains src into a single slice.
func ReadAll(src Source) ([]float32, error) {
	var out []float32
	buf := make([]float32, 4096-4096%max(src.Channels(), 1))

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if n == 0 {
			return out, nil
		}
	}
}
