// SPDX-License-Identifier: EPL-2.0

package soloud

import (
	"math"

	"github.com/ik5/soloud/internal/native"
)

// Voice identifies one playing instance of a source. Zero is never a valid
// voice.
type Voice uint32

// Soloud is the engine that owns voices and mixes them. It does not open an
// audio device: output is pulled with Mix.
type Soloud struct {
	handle
}

// New creates an engine. Call Init before playing anything.
func New() (*Soloud, error) {
	s := &Soloud{}
	if err := acquire(s, &s.handle, "Soloud", native.SoloudCreate, native.SoloudDestroy); err != nil {
		return nil, err
	}
	return s, nil
}

type initConfig struct {
	sampleRate uint32
	bufferSize uint32
}

// InitOption tunes Soloud.Init.
type InitOption func(*initConfig)

// WithSampleRate sets the output rate in Hz. Zero picks 44100.
func WithSampleRate(hz uint32) InitOption {
	return func(c *initConfig) { c.sampleRate = hz }
}

// WithBufferSize sets how many frames are mixed per step. Zero picks 2048.
func WithBufferSize(frames uint32) InitOption {
	return func(c *initConfig) { c.bufferSize = frames }
}

// Init prepares stereo output. Calling it again stops every voice and
// applies the new settings.
func (s *Soloud) Init(flags Flags, opts ...InitOption) error {
	if !flags.Valid() {
		return internalError(InvalidParameter)
	}
	var cfg initConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	err := check("Soloud.Init", native.SoloudInit(s.raw(), uint32(flags), cfg.sampleRate, cfg.bufferSize, 2))
	if err == nil {
		logger().Debug("engine initialized",
			"flags", flags.String(),
			"sample_rate", native.SoloudGetBackendSamplerate(s.raw()),
			"buffer_size", native.SoloudGetBackendBufferSize(s.raw()),
		)
	}
	return err
}

// Play starts src and returns its voice, or 0 if it could not start (the
// engine is not initialized or src has nothing loaded).
func (s *Soloud) Play(src AudioSource) Voice {
	return Voice(native.SoloudPlay(s.raw(), src.sourceHandle()))
}

// Play3D starts src at x, y, z.
func (s *Soloud) Play3D(src AudioSource, x, y, z float32) Voice {
	return Voice(native.SoloudPlay3D(s.raw(), src.sourceHandle(), x, y, z))
}

func (s *Soloud) Set3DListenerPosition(x, y, z float32) {
	native.SoloudSet3DListenerPosition(s.raw(), x, y, z)
}

func (s *Soloud) IsValidVoice(v Voice) bool {
	return native.SoloudIsValidVoiceHandle(s.raw(), uint32(v))
}

// ActiveVoiceCount counts voices that are not paused.
func (s *Soloud) ActiveVoiceCount() uint32 {
	return native.SoloudGetActiveVoiceCount(s.raw())
}

// VoiceCount counts every voice, paused or not.
func (s *Soloud) VoiceCount() uint32 {
	return native.SoloudGetVoiceCount(s.raw())
}

func (s *Soloud) Stop(v Voice) {
	native.SoloudStop(s.raw(), uint32(v))
}

func (s *Soloud) StopAll() {
	native.SoloudStopAll(s.raw())
}

// SetFilterParameter changes attr of the filter in slot filterID of a
// playing voice. Values outside the parameter range are clamped.
func (s *Soloud) SetFilterParameter(v Voice, filterID uint32, attr FilterAttr, value float32) error {
	return check("Soloud.SetFilterParameter",
		native.SoloudSetFilterParameter(s.raw(), uint32(v), filterID, attr.Attr(), value))
}

func (s *Soloud) SetGlobalVolume(volume float32) {
	native.SoloudSetGlobalVolume(s.raw(), volume)
}

func (s *Soloud) GlobalVolume() float32 {
	return native.SoloudGetGlobalVolume(s.raw())
}

func (s *Soloud) SampleRate() uint32 {
	return native.SoloudGetBackendSamplerate(s.raw())
}

func (s *Soloud) BufferSize() uint32 {
	return native.SoloudGetBackendBufferSize(s.raw())
}

func (s *Soloud) Channels() uint32 {
	return native.SoloudGetBackendChannels(s.raw())
}

// Mix renders interleaved stereo into dst. len(dst) must be even.
func (s *Soloud) Mix(dst []float32) error {
	return check("Soloud.Mix", native.SoloudMix(s.raw(), dst))
}

// Render mixes the given duration and returns it as interleaved stereo.
func (s *Soloud) Render(seconds float64) ([]float32, error) {
	if !(seconds >= 0) || math.IsInf(seconds, 1) {
		return nil, internalError(InvalidParameter)
	}
	frames := int(math.Round(seconds * float64(s.SampleRate())))
	out := make([]float32, frames*2)
	if err := s.Mix(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Waveform returns the last mixed samples averaged to mono. It is nil unless
// the engine was initialized with EnableVisualization.
func (s *Soloud) Waveform() []float32 {
	return native.SoloudGetWaveform(s.raw())
}
