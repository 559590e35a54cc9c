// SPDX-License-Identifier: EPL-2.0

package soloud

import "github.com/ik5/soloud/internal/native"

// WavStream plays a file or memory block, decoding while it plays. WAV,
// AIFF, Ogg Vorbis and MP3 are recognized by their content.
type WavStream struct {
	loader
}

func NewWavStream() (*WavStream, error) {
	w := &WavStream{loader: loader{
		loadPath: native.WavStreamLoad,
		loadMem:  native.WavStreamLoadMemEx,
	}}
	if err := acquire(w, &w.handle, "WavStream", native.WavStreamCreate, native.WavStreamDestroy); err != nil {
		return nil, err
	}
	return w, nil
}

// Length is the loaded duration in seconds, 0 before a successful load.
func (w *WavStream) Length() float64 {
	return native.WavStreamGetLength(w.raw())
}
