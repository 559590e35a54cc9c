// SPDX-License-Identifier: EPL-2.0

package native

// Status codes returned across the boundary. The numbering is part of the
// wire contract: append only.
const (
	StatusOK               int32 = 0
	StatusInvalidParameter int32 = 1
	StatusFileNotFound     int32 = 2
	StatusFileLoadFailed   int32 = 3
	StatusDLLNotFound      int32 = 4
	StatusOutOfMemory      int32 = 5
	StatusNotImplemented   int32 = 6
	StatusUnknownError     int32 = 7
)

// Parameter kinds reported by FilterGetParamType.
const (
	ParamFloat int32 = 0
	ParamInt   int32 = 1
	ParamBool  int32 = 2
)

// Engine flag bits accepted by SoloudInit.
const (
	FlagClipRoundoff        uint32 = 1
	FlagEnableVisualization uint32 = 2
	FlagLeftHanded3D        uint32 = 4
	FlagNoFPURegisterChange uint32 = 8

	flagMask = FlagClipRoundoff | FlagEnableVisualization | FlagLeftHanded3D | FlagNoFPURegisterChange
)

// Attenuation models.
const (
	NoAttenuation       uint32 = 0
	InverseDistance     uint32 = 1
	LinearDistance      uint32 = 2
	ExponentialDistance uint32 = 3
)

// Noise colors.
const (
	NoiseWhite    int32 = 0
	NoisePink     int32 = 1
	NoiseBrownish int32 = 2
	NoiseBlueish  int32 = 3
)

// Waveforms.
const (
	WaveSquare int32 = iota
	WaveSaw
	WaveSin
	WaveTriangle
	WaveBounce
	WaveJaws
	WaveHumps
	WaveFSquare
	WaveFSaw
)

// FiltersPerStream is the number of filter slots on a source.
const FiltersPerStream = 8
