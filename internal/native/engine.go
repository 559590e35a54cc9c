// SPDX-License-Identifier: EPL-2.0

package native

import (
	"io"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/ik5/soloud/internal/pcm"
)

// Engine defaults used when SoloudInit gets zeros.
const (
	DefaultSampleRate = 44100
	DefaultBufferSize = 2048
	DefaultChannels   = 2
)

// WaveformSize is the number of samples SoloudGetWaveform returns.
const WaveformSize = 256

// audibleThreshold is the 3D gain below which a voice counts as inaudible.
const audibleThreshold = 1e-3

// Soft clipper limits.
const (
	clipLimit = 1.65
	clipLin   = 0.87
	clipCubic = 0.1
)

type engine struct {
	mu sync.Mutex

	initialized bool
	flags       uint32
	sampleRate  int
	bufferSize  int
	channels    int

	mixer     *beep.Mixer
	mixBuf    [][2]float64
	voices    map[uint32]*voice
	nextVoice uint32

	globalVolume float32
	listener     [3]float32
	waveform     [WaveformSize]float32
}

type voice struct {
	id     uint32
	source Handle
	attrs  sourceAttrs

	stream  *voiceStream
	filters [FiltersPerStream]filterInstance
	tables  [FiltersPerStream][]param
	gain    *effects.Gain
	ctrl    *beep.Ctrl

	is3D    bool
	pos     [3]float32
	stopped bool
}

// Stream lets the mixer drop a stopped voice on its next pass.
func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.stopped {
		return 0, false
	}
	return v.ctrl.Stream(samples)
}

func (v *voice) Err() error { return v.ctrl.Err() }

func (v *voice) setGain(g float32) {
	v.gain.Gain = float64(v.attrs.volume*g) - 1
}

// voiceStream adapts a pcm.Source to a stereo beep.Streamer.
type voiceStream struct {
	src      pcm.Source
	channels int
	autoStop bool
	buf      []float32

	finished bool
	err      error
}

func (s *voiceStream) Stream(samples [][2]float64) (int, bool) {
	if s.finished {
		if s.autoStop {
			return 0, false
		}
		clear(samples)
		return len(samples), true
	}

	need := len(samples) * s.channels
	if cap(s.buf) < need {
		s.buf = make([]float32, need)
	}
	buf := s.buf[:need]

	filled := 0
	for filled < need {
		n, err := s.src.ReadSamples(buf[filled:])
		filled += n
		if err != nil {
			if err != io.EOF {
				s.err = err
			}
			s.finished = true
			break
		}
		if n == 0 {
			break
		}
	}

	frames := filled / s.channels
	for i := range frames {
		frame := buf[i*s.channels:]
		l := float64(frame[0])
		r := l
		if s.channels > 1 {
			r = float64(frame[1])
		}
		samples[i] = [2]float64{l, r}
	}

	if s.finished && s.autoStop {
		return frames, frames > 0
	}
	clear(samples[frames:])
	return len(samples), true
}

func (s *voiceStream) Err() error { return s.err }

func SoloudCreate() Handle {
	return objects.insert(&engine{globalVolume: 1, voices: map[uint32]*voice{}})
}

// SoloudInit prepares the engine for mixing. Zero rate, buffer or channel
// count picks the defaults; only stereo output is implemented.
func SoloudInit(h Handle, flags uint32, sampleRate, bufferSize, channels uint32) int32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return StatusInvalidParameter
	}
	if flags&^flagMask != 0 {
		return StatusInvalidParameter
	}
	if channels == 0 {
		channels = DefaultChannels
	}
	if channels != DefaultChannels {
		return StatusNotImplemented
	}
	if sampleRate == 0 {
		sampleRate = DefaultSampleRate
	}
	if bufferSize == 0 {
		bufferSize = DefaultBufferSize
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopAllLocked()
	e.initialized = true
	e.flags = flags
	e.sampleRate = int(sampleRate)
	e.bufferSize = int(bufferSize)
	e.channels = int(channels)
	e.mixer = &beep.Mixer{}
	e.mixBuf = make([][2]float64, bufferSize)
	e.waveform = [WaveformSize]float32{}
	return StatusOK
}

func SoloudDeinit(h Handle) {
	e, ok := lookup[*engine](h)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopAllLocked()
	e.initialized = false
}

func SoloudDestroy(h Handle) {
	if _, ok := lookup[*engine](h); !ok {
		return
	}
	SoloudDeinit(h)
	objects.remove(h)
}

// SoloudPlay starts src and returns its voice, or 0 when it cannot start.
func SoloudPlay(h, src Handle) uint32 {
	return play(h, src, false, [3]float32{})
}

// SoloudPlay3D starts src at x, y, z.
func SoloudPlay3D(h, src Handle, x, y, z float32) uint32 {
	return play(h, src, true, [3]float32{x, y, z})
}

func play(h, srcHandle Handle, is3D bool, pos [3]float32) uint32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return 0
	}
	src, ok := lookup[audioSource](srcHandle)
	if !ok {
		return 0
	}

	e.mu.Lock()
	initialized, rate, flags := e.initialized, e.sampleRate, e.flags
	e.mu.Unlock()
	if !initialized {
		return 0
	}

	attrs := src.base().snapshot()
	v, err := newVoice(src, attrs, rate)
	if err != nil {
		return 0
	}
	v.source = srcHandle
	v.is3D = is3D
	if flags&FlagLeftHanded3D != 0 {
		pos[2] = -pos[2]
	}
	v.pos = pos

	b := src.base()
	b.mu.Lock()
	b.engine = e
	b.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		_ = v.stream.src.Close()
		return 0
	}
	e.nextVoice++
	if e.nextVoice == 0 {
		e.nextVoice = 1
	}
	v.id = e.nextVoice
	e.voices[v.id] = v
	e.mixer.Add(v)
	return v.id
}

func newVoice(src audioSource, attrs sourceAttrs, rate int) (*voice, error) {
	var (
		stream pcm.Source
		err    error
	)
	if attrs.looping {
		stream, err = newLooper(src.open, attrs.loopPoint)
	} else {
		stream, err = src.open()
	}
	if err != nil {
		return nil, err
	}
	if stream.SampleRate() != rate {
		stream = pcm.NewResampler(stream, rate)
	}

	v := &voice{
		attrs: attrs,
		stream: &voiceStream{
			src:      stream,
			channels: stream.Channels(),
			autoStop: attrs.autoStop,
		},
	}

	var chain beep.Streamer = v.stream
	for i, fh := range attrs.filters {
		f, ok := lookup[*filter](fh)
		if !ok {
			continue
		}
		inst := f.instance(chain, rate)
		v.filters[i] = inst
		v.tables[i] = f.table()
		chain = inst
	}

	v.gain = &effects.Gain{Streamer: chain}
	v.setGain(1)
	v.ctrl = &beep.Ctrl{Streamer: v.gain}
	return v, nil
}

// stopLocked removes v. e.mu must be held.
func (e *engine) stopLocked(v *voice) {
	v.stopped = true
	delete(e.voices, v.id)
	_ = v.stream.src.Close()
}

func (e *engine) stopAllLocked() {
	for _, v := range e.voices {
		e.stopLocked(v)
	}
	if e.mixer != nil {
		e.mixer.Clear()
	}
}

func (e *engine) stopSource(src Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, v := range e.voices {
		if v.source == src {
			e.stopLocked(v)
		}
	}
}

func SoloudStop(h Handle, voiceHandle uint32) {
	e, ok := lookup[*engine](h)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if v, ok := e.voices[voiceHandle]; ok {
		e.stopLocked(v)
	}
}

func SoloudStopAll(h Handle) {
	e, ok := lookup[*engine](h)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopAllLocked()
}

func SoloudIsValidVoiceHandle(h Handle, voiceHandle uint32) bool {
	e, ok := lookup[*engine](h)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok = e.voices[voiceHandle]
	return ok
}

func SoloudGetActiveVoiceCount(h Handle) uint32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	var n uint32
	for _, v := range e.voices {
		if !v.ctrl.Paused {
			n++
		}
	}
	return n
}

// SoloudGetVoiceCount includes paused voices.
func SoloudGetVoiceCount(h Handle) uint32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return uint32(len(e.voices))
}

func SoloudSetGlobalVolume(h Handle, volume float32) {
	e, ok := lookup[*engine](h)
	if !ok {
		return
	}
	e.mu.Lock()
	e.globalVolume = volume
	e.mu.Unlock()
}

func SoloudGetGlobalVolume(h Handle) float32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.globalVolume
}

func SoloudGetBackendSamplerate(h Handle) uint32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return uint32(e.sampleRate)
}

func SoloudGetBackendChannels(h Handle) uint32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return uint32(e.channels)
}

func SoloudGetBackendBufferSize(h Handle) uint32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return uint32(e.bufferSize)
}

func SoloudSet3DListenerPosition(h Handle, x, y, z float32) {
	e, ok := lookup[*engine](h)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.flags&FlagLeftHanded3D != 0 {
		z = -z
	}
	e.listener = [3]float32{x, y, z}
}

// SoloudSetFilterParameter changes attr of the filter in slot filterID on a
// playing voice. value is clamped to the parameter range.
func SoloudSetFilterParameter(h Handle, voiceHandle, filterID, attr uint32, value float32) int32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return StatusInvalidParameter
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	v, ok := e.voices[voiceHandle]
	if !ok || filterID >= FiltersPerStream || v.filters[filterID] == nil {
		return StatusInvalidParameter
	}
	table := v.tables[filterID]
	if attr >= uint32(len(table)) {
		return StatusInvalidParameter
	}
	p := table[attr]
	v.filters[filterID].setParam(int(attr), min(max(value, p.min), p.max))
	return StatusOK
}

// SoloudGetWaveform returns the last mixed samples averaged to mono, or nil
// without FlagEnableVisualization.
func SoloudGetWaveform(h Handle) []float32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.flags&FlagEnableVisualization == 0 {
		return nil
	}
	out := make([]float32, WaveformSize)
	copy(out, e.waveform[:])
	return out
}

// SoloudMix renders len(dst)/2 stereo frames into dst.
func SoloudMix(h Handle, dst []float32) int32 {
	e, ok := lookup[*engine](h)
	if !ok {
		return StatusInvalidParameter
	}

	e.mu.Lock()
	initialized, channels, chunk := e.initialized, e.channels, e.bufferSize
	e.mu.Unlock()
	if !initialized || len(dst)%channels != 0 {
		return StatusInvalidParameter
	}

	for len(dst) > 0 {
		frames := min(len(dst)/channels, chunk)
		e.update3D()
		e.mixChunk(dst[:frames*channels])
		dst = dst[frames*channels:]
	}
	return StatusOK
}

type placement struct {
	v     *voice
	attrs sourceAttrs
	rel   [3]float32
	gain  float32
}

// update3D recomputes 3D gains. Callbacks run with e.mu released.
func (e *engine) update3D() {
	e.mu.Lock()
	var work []placement
	for _, v := range e.voices {
		if !v.is3D {
			continue
		}
		rel := v.pos
		if !v.attrs.listenerRelative {
			for i := range rel {
				rel[i] -= e.listener[i]
			}
		}
		work = append(work, placement{v: v, attrs: v.attrs, rel: rel})
	}
	e.mu.Unlock()

	if len(work) == 0 {
		return
	}

	for i := range work {
		work[i].gain = gain3D(work[i].attrs, work[i].rel)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range work {
		v := p.v
		if v.stopped {
			continue
		}
		v.setGain(p.gain)

		audible := p.gain*v.attrs.volume >= audibleThreshold
		switch {
		case audible:
			v.ctrl.Paused = false
		case v.attrs.kill:
			e.stopLocked(v)
		case !v.attrs.mustTick:
			v.ctrl.Paused = true
		}
	}
}

func gain3D(a sourceAttrs, rel [3]float32) float32 {
	distance := float32(math.Sqrt(float64(rel[0]*rel[0] + rel[1]*rel[1] + rel[2]*rel[2])))

	var g float32
	if at, ok := lookup[*attenuator](a.attenuator); ok {
		g = at.fn(distance, a.minDistance, a.maxDistance, a.rolloff)
	} else {
		g = Attenuate(a.attenuationModel, distance, a.minDistance, a.maxDistance, a.rolloff)
	}
	if c, ok := lookup[*collider](a.collider); ok {
		g *= c.fn(rel[0], rel[1], rel[2])
	}
	return g
}

// Attenuate applies model to distance. Distances are clamped to
// [minDistance, maxDistance] first.
func Attenuate(model uint32, distance, minDistance, maxDistance, rolloff float32) float32 {
	maxDistance = max(maxDistance, minDistance)
	d := min(max(distance, minDistance), maxDistance)

	switch model {
	case InverseDistance:
		den := minDistance + rolloff*(d-minDistance)
		if den <= 0 {
			return 1
		}
		return minDistance / den
	case LinearDistance:
		if maxDistance == minDistance {
			return 1
		}
		return min(max(1-rolloff*(d-minDistance)/(maxDistance-minDistance), 0), 1)
	case ExponentialDistance:
		if minDistance <= 0 {
			return 1
		}
		return float32(math.Pow(float64(d/minDistance), float64(-rolloff)))
	default:
		return 1
	}
}

func (e *engine) mixChunk(dst []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	frames := len(dst) / e.channels
	buf := e.mixBuf[:frames]
	e.mixer.Stream(buf)

	for _, v := range e.voices {
		if v.stream.finished && v.attrs.autoStop {
			e.stopLocked(v)
		}
	}

	gv := float64(e.globalVolume)
	soft := e.flags&FlagClipRoundoff != 0
	for i, frame := range buf {
		for c := range 2 {
			dst[i*2+c] = clipSample(frame[c]*gv, soft)
		}
	}

	if e.flags&FlagEnableVisualization != 0 {
		e.waveform = [WaveformSize]float32{}
		for i := range min(frames, WaveformSize) {
			e.waveform[i] = (dst[i*2] + dst[i*2+1]) / 2
		}
	}
}

func clipSample(x float64, soft bool) float32 {
	if !soft {
		return float32(min(max(x, -1), 1))
	}
	x = min(max(x, -clipLimit), clipLimit)
	return float32(clipLin*x - clipCubic*x*x*x)
}
