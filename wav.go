// SPDX-License-Identifier: EPL-2.0

package soloud

import "github.com/ik5/soloud/internal/native"

// Wav decodes its whole input on load and plays from memory.
type Wav struct {
	loader
}

func NewWav() (*Wav, error) {
	w := &Wav{loader: loader{
		loadPath: native.WavLoad,
		loadMem:  native.WavLoadMemEx,
	}}
	if err := acquire(w, &w.handle, "Wav", native.WavCreate, native.WavDestroy); err != nil {
		return nil, err
	}
	return w, nil
}

// Length is the loaded duration in seconds.
func (w *Wav) Length() float64 {
	return native.WavGetLength(w.raw())
}
