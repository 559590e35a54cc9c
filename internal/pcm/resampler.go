// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"io"
)

// Resampler streams src at another sample rate using cubic interpolation.
// Works on interleaved samples and preserves the channel count. When
// downsampling, a one-pole low-pass runs on the input to tame aliasing.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames consumed per output frame
	channels int

	// window[1] and window[2] bracket the output position; window[0] and
	// window[3] are the outer cubic support points.
	window [4][]float32
	valid  [4]bool
	primed bool

	pos    float64 // fractional position between window[1] and window[2]
	srcBuf []float32
	eof    bool

	lowpass bool
	lpState []float32
}

const lowpassAlpha = 0.5

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		srcBuf:   make([]float32, channels),
		lpState:  make([]float32, channels),
	}
	r.lowpass = r.step > 1.0

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame into dst. ok is false when no frame was read.
func (r *Resampler) readFrame(dst []float32, filter bool) (bool, error) {
	if r.eof {
		return false, io.EOF
	}

	n, err := r.src.ReadSamples(r.srcBuf)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}
	if n < r.channels {
		if r.eof {
			return false, io.EOF
		}
		return false, nil
	}

	copy(dst, r.srcBuf)
	if filter && r.lowpass {
		for c := range r.channels {
			dst[c] = lowpassAlpha*dst[c] + (1-lowpassAlpha)*r.lpState[c]
			r.lpState[c] = dst[c]
		}
	}
	return true, nil
}

// prime fills the window. The first frame seeds the low-pass state so the
// filter does not ramp in from zero.
func (r *Resampler) prime() error {
	r.primed = true

	for i := range r.window {
		ok, err := r.readFrame(r.window[i], false)
		if err != nil && err != io.EOF {
			return err
		}
		if !ok {
			if i == 0 {
				return io.EOF
			}
			r.hold(i - 1)
			return nil
		}
		r.valid[i] = true
		if i == 0 {
			copy(r.lpState, r.window[0])
		}
		if r.eof {
			r.hold(i)
			return nil
		}
	}
	return nil
}

// hold repeats window[last] into the remaining support points.
func (r *Resampler) hold(last int) {
	for j := last + 1; j < len(r.window); j++ {
		copy(r.window[j], r.window[last])
		r.valid[j] = true
	}
}

// advance shifts the window left by one frame.
func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.valid[:], r.valid[1:])
	r.window[3] = first

	ok, err := r.readFrame(r.window[3], true)
	r.valid[3] = ok
	if err == io.EOF {
		if !r.valid[2] {
			return io.EOF
		}
		return nil
	}
	return err
}

// ReadSamples produces dst samples at the target rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.valid[1] || !r.valid[2] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			y0 := r.window[1][c]
			if r.valid[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.valid[3] {
				y3 = r.window[3][c]
			}
			out[c] = CubicInterpolate(y0, r.window[1][c], r.window[2][c], y3, x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
