// SPDX-License-Identifier: EPL-2.0

package soloud

import (
	"fmt"
	"strings"

	"github.com/ik5/soloud/internal/native"
)

// The integer value of every constant in this file is part of the engine's
// wire contract. Tables are append only.

// WaveForm selects the oscillator shape of a Tone.
type WaveForm int32

const (
	Square WaveForm = iota
	Saw
	Sin
	Triangle
	Bounce
	Jaws
	Humps
	FSquare
	FSaw
)

var waveFormNames = [...]string{"square", "saw", "sin", "triangle", "bounce", "jaws", "humps", "fsquare", "fsaw"}

func (w WaveForm) String() string {
	if w >= 0 && int(w) < len(waveFormNames) {
		return waveFormNames[w]
	}
	return fmt.Sprintf("WaveForm(%d)", int32(w))
}

// ParseWaveForm accepts the names String returns.
func ParseWaveForm(s string) (WaveForm, error) {
	for i, name := range waveFormNames {
		if strings.EqualFold(s, name) {
			return WaveForm(i), nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q", s)
}

// AttenuationModel picks how 3D distance turns into gain.
type AttenuationModel uint32

const (
	NoAttenuation AttenuationModel = iota
	InverseDistance
	LinearDistance
	ExponentialDistance
)

func (m AttenuationModel) String() string {
	switch m {
	case NoAttenuation:
		return "none"
	case InverseDistance:
		return "inverse"
	case LinearDistance:
		return "linear"
	case ExponentialDistance:
		return "exponential"
	default:
		return fmt.Sprintf("AttenuationModel(%d)", uint32(m))
	}
}

// NoiseType is the color of a Noise source.
type NoiseType int32

const (
	White NoiseType = iota
	Pink
	Brownish
	Blueish
)

var noiseTypeNames = [...]string{"white", "pink", "brownish", "blueish"}

func (n NoiseType) String() string {
	if n >= 0 && int(n) < len(noiseTypeNames) {
		return noiseTypeNames[n]
	}
	return fmt.Sprintf("NoiseType(%d)", int32(n))
}

// ParseNoiseType accepts the names String returns.
func ParseNoiseType(s string) (NoiseType, error) {
	for i, name := range noiseTypeNames {
		if strings.EqualFold(s, name) {
			return NoiseType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown noise type %q", s)
}

// ParamType is the value kind of a filter parameter.
type ParamType int32

const (
	ParamFloat ParamType = iota
	ParamInt
	ParamBool
)

func (p ParamType) String() string {
	switch p {
	case ParamFloat:
		return "float"
	case ParamInt:
		return "int"
	case ParamBool:
		return "bool"
	default:
		return fmt.Sprintf("ParamType(%d)", int32(p))
	}
}

// Flags is the engine option bit set passed to Soloud.Init.
type Flags uint32

const (
	ClipRoundoff Flags = 1 << iota
	EnableVisualization
	LeftHanded3D
	NoFPURegisterChange

	allFlags = ClipRoundoff | EnableVisualization | LeftHanded3D | NoFPURegisterChange
)

// Combine ORs fs into f.
func (f Flags) Combine(fs ...Flags) Flags {
	for _, o := range fs {
		f |= o
	}
	return f
}

// Has reports whether every bit of o is set in f.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

// Valid reports whether f only uses declared bits.
func (f Flags) Valid() bool {
	return f&^allFlags == 0
}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	names := []struct {
		bit  Flags
		name string
	}{
		{ClipRoundoff, "ClipRoundoff"},
		{EnableVisualization, "EnableVisualization"},
		{LeftHanded3D, "LeftHanded3D"},
		{NoFPURegisterChange, "NoFPURegisterChange"},
	}
	var parts []string
	for _, n := range names {
		if f.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	if rest := f &^ allFlags; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// FilterAttr names a parameter of one filter type for
// Soloud.SetFilterParameter.
type FilterAttr interface {
	Attr() uint32
}

// BassboostAttr indexes BassboostFilter parameters.
type BassboostAttr uint32

const (
	BassboostWet BassboostAttr = iota
	BassboostBoost
)

func (a BassboostAttr) Attr() uint32 { return uint32(a) }

// EchoAttr indexes EchoFilter parameters.
type EchoAttr uint32

const (
	EchoWet EchoAttr = iota
	EchoDelay
	EchoDecay
	EchoFilterAmount
)

func (a EchoAttr) Attr() uint32 { return uint32(a) }

func _() {
	// A compiler error here means a table above drifted from the engine.
	var x [1]struct{}
	_ = x[int32(FSaw)-native.WaveFSaw]
	_ = x[uint32(ExponentialDistance)-native.ExponentialDistance]
	_ = x[int32(Blueish)-native.NoiseBlueish]
	_ = x[int32(ParamBool)-native.ParamBool]
	_ = x[uint32(NoFPURegisterChange)-native.FlagNoFPURegisterChange]
}
