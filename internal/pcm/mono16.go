// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"io"
)

// ToMono16 drains src through a Resampler and a MonoMixer and returns 16-bit
// PCM at targetRate. The resampler is skipped when the rates already match.
//
// bufferSize is the number of mono samples read per step.
func ToMono16(src Source, targetRate, bufferSize int) ([]int16, error) {
	var s Source = src
	if src.SampleRate() != targetRate {
		s = NewResampler(src, targetRate)
	}
	mono := NewMonoMixer(s)

	// roughly two seconds up front; AppendInt16 grows from there
	out := make([]int16, 0, targetRate*2)
	buf := make([]float32, max(bufferSize, 1))

	for {
		n, err := mono.ReadSamples(buf)
		out = AppendInt16(out, buf[:n])

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
		if n == 0 {
			return out, nil
		}
	}
}
