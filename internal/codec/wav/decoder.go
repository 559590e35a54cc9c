// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/soloud/internal/codec/intpcm"
	"github.com/ik5/soloud/internal/pcm"
)

const formatPCM = 1

// Match reports whether header starts a RIFF/WAVE stream.
func Match(header []byte) bool {
	return len(header) >= 12 &&
		bytes.Equal(header[:4], []byte("RIFF")) &&
		bytes.Equal(header[8:12], []byte("WAVE"))
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (pcm.Source, error) {
	rs, err := intpcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	if dec.WavAudioFormat != formatPCM {
		return nil, ErrUnsupportedEncoding
	}
	if dec.NumChans == 0 {
		return nil, ErrInvalidChannels
	}

	return intpcm.NewSource(dec, int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth)), nil
}
