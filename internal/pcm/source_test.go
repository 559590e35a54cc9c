// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type stubDecoder struct{ name string }

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return NewSliceSource(nil, 8000, 1), nil
}

func prefix(p string) MatchFunc {
	return func(h []byte) bool { return bytes.HasPrefix(h, []byte(p)) }
}

func TestRegistry_Detect(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("wav", prefix("RIFF"), &stubDecoder{"wav"})
	reg.Register("ogg", prefix("OggS"), &stubDecoder{"ogg"})
	reg.Register("any", func([]byte) bool { return true }, &stubDecoder{"any"})

	tests := []struct {
		header string
		want   string
	}{
		{"RIFF\x00\x00\x00\x00WAVE", "wav"},
		{"OggS\x00\x02", "ogg"},
		{"garbage", "any"},
	}

	for _, tt := range tests {
		name, _, ok := reg.Detect([]byte(tt.header))
		if !ok || name != tt.want {
			t.Errorf("Detect(%q) = (%q, %v), want %q", tt.header, name, ok, tt.want)
		}
	}
}

func TestRegistry_ReplaceKeepsOrder(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("a", prefix("A"), &stubDecoder{"a"})
	reg.Register("b", prefix("B"), &stubDecoder{"b"})
	second := &stubDecoder{"a2"}
	reg.Register("a", prefix("A"), second)

	if got := reg.Formats(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Formats() = %v, want [a b]", got)
	}
	if _, d, _ := reg.Detect([]byte("A")); d != second {
		t.Error("Register did not replace decoder")
	}
}

func TestRegistry_DetectNoMatch(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if _, _, ok := reg.Detect([]byte("xx")); ok {
		t.Error("Detect() on empty registry reported a match")
	}
}

func TestSliceSource_WholeFrames(t *testing.T) {
	t.Parallel()

	src := NewSliceSource([]float32{1, 2, 3, 4, 5, 6}, 8000, 2)

	buf := make([]float32, 3)
	n, err := src.ReadSamples(buf)
	if err != nil || n != 2 {
		t.Fatalf("ReadSamples() = (%d, %v), want (2, nil)", n, err)
	}

	rest, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rest) != 4 || rest[0] != 3 {
		t.Errorf("ReadAll() = %v, want [3 4 5 6]", rest)
	}
}

func TestReadAll_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := ReadAll(failingSource{boom})
	if !errors.Is(err, boom) {
		t.Errorf("ReadAll() error = %v, want %v", err, boom)
	}
}

type failingSource struct{ err error }

func (failingSource) SampleRate() int { return 8000 }
func (failingSource) Channels() int   { return 1 }
func (failingSource) Close() error    { return nil }

func (f failingSource) ReadSamples([]float32) (int, error) {
	return 0, f.err
}
