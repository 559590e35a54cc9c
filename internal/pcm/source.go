// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"io"
	"sync"
)

// Source is a stream of interleaved samples.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// MatchFunc reports whether header looks like the start of a given format.
type MatchFunc func(header []byte) bool

// HeaderSize is how many leading bytes Detect needs to tell formats apart.
const HeaderSize = 12

type format struct {
	name    string
	match   MatchFunc
	decoder Decoder
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
// Detection order is registration order.
type Registry struct {
	formats []format

	mtx sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds or replaces the decoder for name.
func (r *Registry) Register(name string, match MatchFunc, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for i := range r.formats {
		if r.formats[i].name == name {
			r.formats[i] = format{name: name, match: match, decoder: d}
			return
		}
	}
	r.formats = append(r.formats, format{name: name, match: match, decoder: d})
}

// Detect returns the first registered format whose matcher accepts header.
func (r *Registry) Detect(header []byte) (string, Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	for _, f := range r.formats {
		if f.match != nil && f.match(header) {
			return f.name, f.decoder, true
		}
	}
	return "", nil, false
}

// Formats lists the registered format names in detection order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	names := make([]string, 0, len(r.formats))
	for _, f := range r.formats {
		names = append(names, f.name)
	}
	return names
}
