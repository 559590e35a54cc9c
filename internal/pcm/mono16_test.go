// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/soloud/internal/pcm/pcmtest"
)

func TestToMono16_Resamples(t *testing.T) {
	t.Parallel()

	// one second of stereo at 44.1kHz
	src := pcmtest.Sine(44100, 2, 44100, 440)

	out, err := ToMono16(src, 8000, 4096)
	if err != nil {
		t.Fatalf("ToMono16() error = %v", err)
	}

	expected, tolerance := 8000, 200
	if len(out) < expected-tolerance || len(out) > expected+tolerance {
		t.Errorf("ToMono16() got %d samples, want ≈%d (±%d)", len(out), expected, tolerance)
	}
}

func TestToMono16_SameRate(t *testing.T) {
	t.Parallel()

	src := pcmtest.Constant(16000, 2, 1600, 0.5)

	out, err := ToMono16(src, 16000, 256)
	if err != nil {
		t.Fatalf("ToMono16() error = %v", err)
	}
	if len(out) != 1600 {
		t.Fatalf("len = %d, want 1600 (no resampling)", len(out))
	}
	for i, s := range out {
		if math.Abs(float64(s)-16383) > 1 {
			t.Errorf("out[%d] = %d, want ≈16383", i, s)
			break
		}
	}
}

func TestToMono16_Empty(t *testing.T) {
	t.Parallel()

	out, err := ToMono16(pcmtest.Silent(8000, 2, 0), 8000, 512)
	if err != nil {
		t.Fatalf("ToMono16() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}

func TestToMono16_PropagatesError(t *testing.T) {
	t.Parallel()

	src := pcmtest.Constant(8000, 1, 8000, 0.25).FailAfter(100)

	out, err := ToMono16(src, 8000, 64)
	if !errors.Is(err, pcmtest.ErrInjected) {
		t.Fatalf("err = %v, want ErrInjected", err)
	}
	if len(out) == 0 {
		t.Error("samples read before the failure were dropped")
	}
}
