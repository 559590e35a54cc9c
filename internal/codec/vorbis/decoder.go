// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
package vorbis

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/soloud/internal/pcm"
	"github.com/jfreymuth/oggvorbis"
)

// Match reports whether header starts an Ogg page.
func Match(header []byte) bool {
	return bytes.HasPrefix(header, []byte("OggS"))
}

// oggReader is the part of oggvorbis.Reader the source uses
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }

// ReadSamples reads whole frames; oggvorbis returns the number of
// interleaved values written.
func (s *source) ReadSamples(dst []float32) (int, error) {
	channels := s.dec.Channels()
	dst = dst[:len(dst)-len(dst)%channels]
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (pcm.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return &source{dec: dec}, nil
}
