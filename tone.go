// SPDX-License-Identifier: EPL-2.0

package soloud

import "github.com/ik5/soloud/internal/native"

// Tone is an endless oscillator. It starts as a 440 Hz square wave.
type Tone struct {
	audioSource
}

func NewTone() (*Tone, error) {
	t := &Tone{}
	if err := acquire(t, &t.handle, "Tone", native.ToneCreate, native.ToneDestroy); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tone) SetWaveform(w WaveForm) {
	native.ToneSetWaveform(t.raw(), int32(w))
}

// SetFrequency fails with InvalidParameter unless 0 < hz < 22050.
func (t *Tone) SetFrequency(hz float32) error {
	return check("Tone.SetFrequency", native.ToneSetFrequency(t.raw(), hz))
}
