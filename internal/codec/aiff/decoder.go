// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF integer PCM through github.com/go-audio/aiff.
package aiff

import (
	"bytes"
	"io"

	goaiff "github.com/go-audio/aiff"
	"github.com/ik5/soloud/internal/codec/intpcm"
	"github.com/ik5/soloud/internal/pcm"
)

// Match reports whether header starts an AIFF or AIFF-C stream.
func Match(header []byte) bool {
	if len(header) < 12 || !bytes.Equal(header[:4], []byte("FORM")) {
		return false
	}
	form := header[8:12]
	return bytes.Equal(form, []byte("AIFF")) || bytes.Equal(form, []byte("AIFC"))
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (pcm.Source, error) {
	rs, err := intpcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels == 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return intpcm.NewSource(dec, format.SampleRate, format.NumChannels, int(dec.BitDepth)), nil
}
