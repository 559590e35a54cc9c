// SPDX-License-Identifier: EPL-2.0

package native

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/ik5/soloud/internal/codec/aiff"
	"github.com/ik5/soloud/internal/codec/mp3"
	"github.com/ik5/soloud/internal/codec/vorbis"
	"github.com/ik5/soloud/internal/codec/wav"
	"github.com/ik5/soloud/internal/pcm"
)

// Decoders is the format registry loaders detect against. mp3 goes last
// because a bare frame sync is the weakest signature.
var Decoders = func() *pcm.Registry {
	r := pcm.NewRegistry()
	r.Register("wav", wav.Match, wav.Decoder{})
	r.Register("aiff", aiff.Match, aiff.Decoder{})
	r.Register("ogg", vorbis.Match, vorbis.Decoder{})
	r.Register("mp3", mp3.Match, mp3.Decoder{})
	return r
}()

// clip is the loaded payload behind Wav and WavStream: a path or a block of
// memory, plus what was learned while validating it.
type clip struct {
	path   string
	data   []byte
	owned  bool
	length float64
}

func (c *clip) open() (pcm.Source, error) {
	if c.path != "" {
		return openFile(c.path)
	}
	src, _, err := decode(bytes.NewReader(c.data), c.data[:min(len(c.data), pcm.HeaderSize)])
	return src, err
}

// fileSource closes the file under the decoder.
type fileSource struct {
	pcm.Source
	f *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

func openFile(path string) (pcm.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	header := make([]byte, pcm.HeaderSize)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("rewind: %w", err)
	}

	src, _, err := decode(f, header[:n])
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fileSource{Source: src, f: f}, nil
}

func decode(r io.Reader, header []byte) (pcm.Source, string, error) {
	name, dec, ok := Decoders.Detect(header)
	if !ok {
		return nil, "", pcm.ErrUnknownFormat
	}
	src, err := dec.Decode(r)
	if err != nil {
		return nil, name, fmt.Errorf("%s: %w", name, err)
	}
	return src, name, nil
}

// probe decodes c once to validate it and measure its length.
func (c *clip) probe() ([]float32, int, int, int32) {
	src, err := c.open()
	if err != nil {
		return nil, 0, 0, loadStatus(err)
	}
	defer src.Close()

	samples, err := pcm.ReadAll(src)
	if err != nil {
		return nil, 0, 0, StatusFileLoadFailed
	}

	rate, channels := src.SampleRate(), src.Channels()
	if rate <= 0 || channels <= 0 {
		return nil, 0, 0, StatusFileLoadFailed
	}
	c.length = float64(len(samples)/channels) / float64(rate)
	return samples, rate, channels, StatusOK
}

func loadStatus(err error) int32 {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, fs.ErrNotExist):
		return StatusFileNotFound
	default:
		return StatusFileLoadFailed
	}
}

func fileClip(path []byte) (*clip, int32) {
	p := GoString(path)
	if p == "" {
		return nil, StatusInvalidParameter
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, loadStatus(err)
	}
	if info.IsDir() {
		return nil, StatusFileLoadFailed
	}
	return &clip{path: p}, StatusOK
}

func memClip(data []byte, copyData, takeOwnership bool) (*clip, int32) {
	if len(data) == 0 {
		return nil, StatusInvalidParameter
	}
	if copyData {
		data = slices.Clone(data)
	}
	return &clip{data: data, owned: copyData || takeOwnership}, StatusOK
}

type wavStream struct {
	sourceBase
	clip *clip
}

func (w *wavStream) open() (pcm.Source, error) {
	w.mu.Lock()
	c := w.clip
	w.mu.Unlock()

	if c == nil {
		return nil, errNotLoaded
	}
	return c.open()
}

var errNotLoaded = errors.New("nothing loaded")

func WavStreamCreate() Handle {
	return objects.insert(&wavStream{sourceBase: newSourceBase()})
}

func WavStreamDestroy(h Handle) {
	w, ok := lookup[*wavStream](h)
	if !ok {
		return
	}
	destroySource(h)
	w.setClip(nil)
}

func (w *wavStream) setClip(c *clip) {
	w.mu.Lock()
	w.clip = c
	w.mu.Unlock()
}

// WavStreamLoad validates the file at path and keeps the path for playback.
func WavStreamLoad(h Handle, path []byte) int32 {
	w, ok := lookup[*wavStream](h)
	if !ok {
		return StatusInvalidParameter
	}
	c, status := fileClip(path)
	if status != StatusOK {
		return status
	}
	return w.load(h, c)
}

// WavStreamLoadMemEx validates data. With copyData false the stream keeps
// reading the caller's slice.
func WavStreamLoadMemEx(h Handle, data []byte, copyData, takeOwnership bool) int32 {
	w, ok := lookup[*wavStream](h)
	if !ok {
		return StatusInvalidParameter
	}
	c, status := memClip(data, copyData, takeOwnership)
	if status != StatusOK {
		return status
	}
	return w.load(h, c)
}

func WavStreamLoadMem(h Handle, data []byte) int32 {
	return WavStreamLoadMemEx(h, data, true, false)
}

func (w *wavStream) load(h Handle, c *clip) int32 {
	AudioSourceStop(h)
	if _, _, _, status := c.probe(); status != StatusOK {
		return status
	}
	w.setClip(c)
	return StatusOK
}

// WavStreamGetLength is the loaded length in seconds, 0 when empty.
func WavStreamGetLength(h Handle) float64 {
	w, ok := lookup[*wavStream](h)
	if !ok {
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.clip == nil {
		return 0
	}
	return w.clip.length
}

// WavStreamOwnsData reports whether the loaded memory is held by the engine
// rather than borrowed from the caller.
func WavStreamOwnsData(h Handle) bool {
	w, ok := lookup[*wavStream](h)
	if !ok {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.clip != nil && w.clip.owned
}

// decoded holds a fully decoded clip.
type decoded struct {
	samples    []float32
	sampleRate int
	channels   int
}

type wavSample struct {
	sourceBase
	data *decoded
}

func (w *wavSample) open() (pcm.Source, error) {
	w.mu.Lock()
	d := w.data
	w.mu.Unlock()

	if d == nil {
		return nil, errNotLoaded
	}
	return pcm.NewSliceSource(d.samples, d.sampleRate, d.channels), nil
}

func WavCreate() Handle {
	return objects.insert(&wavSample{sourceBase: newSourceBase()})
}

func WavDestroy(h Handle) {
	w, ok := lookup[*wavSample](h)
	if !ok {
		return
	}
	destroySource(h)
	w.mu.Lock()
	w.data = nil
	w.mu.Unlock()
}

// WavLoad decodes the whole file at path into memory.
func WavLoad(h Handle, path []byte) int32 {
	w, ok := lookup[*wavSample](h)
	if !ok {
		return StatusInvalidParameter
	}
	c, status := fileClip(path)
	if status != StatusOK {
		return status
	}
	return w.load(h, c)
}

// WavLoadMemEx decodes data. The engine never keeps data itself, so the
// flags only matter to the caller's bookkeeping.
func WavLoadMemEx(h Handle, data []byte, copyData, takeOwnership bool) int32 {
	w, ok := lookup[*wavSample](h)
	if !ok {
		return StatusInvalidParameter
	}
	c, status := memClip(data, copyData, takeOwnership)
	if status != StatusOK {
		return status
	}
	return w.load(h, c)
}

func WavLoadMem(h Handle, data []byte) int32 {
	return WavLoadMemEx(h, data, true, false)
}

func (w *wavSample) load(h Handle, c *clip) int32 {
	AudioSourceStop(h)
	samples, rate, channels, status := c.probe()
	if status != StatusOK {
		return status
	}

	w.mu.Lock()
	w.data = &decoded{samples: samples, sampleRate: rate, channels: channels}
	w.mu.Unlock()
	return StatusOK
}

func WavGetLength(h Handle) float64 {
	w, ok := lookup[*wavSample](h)
	if !ok {
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.data == nil {
		return 0
	}
	return float64(len(w.data.samples)/w.data.channels) / float64(w.data.sampleRate)
}
