// SPDX-License-Identifier: EPL-2.0

package native

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type param struct {
	name     string
	kind     int32
	min, max float32
	initial  float32
}

type filterKind int

const (
	kindBassboost filterKind = iota
	kindEcho
)

// Parameter tables. Index order is the attribute numbering callers use.
var paramTables = map[filterKind][]param{
	kindBassboost: {
		{name: "Wet", kind: ParamFloat, min: 0, max: 1, initial: 1},
		{name: "Boost", kind: ParamFloat, min: 0, max: 10, initial: 2},
	},
	kindEcho: {
		{name: "Wet", kind: ParamFloat, min: 0, max: 1, initial: 1},
		{name: "Delay", kind: ParamFloat, min: 0, max: 10, initial: 0.3},
		{name: "Decay", kind: ParamFloat, min: 0, max: 1, initial: 0.7},
		{name: "Filter", kind: ParamFloat, min: 0, max: 1, initial: 0},
	},
}

const (
	bassboostWet = iota
	bassboostBoost
)

const (
	echoWet = iota
	echoDelay
	echoDecay
	echoFilter
)

type filter struct {
	mu     sync.Mutex
	kind   filterKind
	values []float32
}

func newFilter(kind filterKind) *filter {
	table := paramTables[kind]
	values := make([]float32, len(table))
	for i, p := range table {
		values[i] = p.initial
	}
	return &filter{kind: kind, values: values}
}

func (f *filter) table() []param { return paramTables[f.kind] }

func (f *filter) snapshot() []float32 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]float32(nil), f.values...)
}

func (f *filter) set(values map[int]float32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, v := range values {
		f.values[i] = v
	}
}

// instance creates the per-voice state that processes a voice's audio.
func (f *filter) instance(in beep.Streamer, sampleRate int) filterInstance {
	values := f.snapshot()
	switch f.kind {
	case kindEcho:
		return newEchoInstance(in, sampleRate, values)
	default:
		return newBassboostInstance(in, sampleRate, values)
	}
}

func paramAt(h Handle, index uint32) (param, bool) {
	f, ok := lookup[*filter](h)
	if !ok {
		return param{}, false
	}
	table := f.table()
	if index >= uint32(len(table)) {
		return param{}, false
	}
	return table[index], true
}

func FilterGetParamCount(h Handle) int32 {
	f, ok := lookup[*filter](h)
	if !ok {
		return 0
	}
	return int32(len(f.table()))
}

// FilterGetParamName returns the NUL-terminated name of parameter index, or
// nil when index is out of range.
func FilterGetParamName(h Handle, index uint32) []byte {
	p, ok := paramAt(h, index)
	if !ok {
		return nil
	}
	return CString(p.name)
}

// FilterGetParamType defaults to ParamFloat out of range.
func FilterGetParamType(h Handle, index uint32) int32 {
	p, ok := paramAt(h, index)
	if !ok {
		return ParamFloat
	}
	return p.kind
}

// FilterGetParamMax defaults to 1 out of range.
func FilterGetParamMax(h Handle, index uint32) float32 {
	p, ok := paramAt(h, index)
	if !ok {
		return 1
	}
	return p.max
}

// FilterGetParamMin defaults to 0 out of range.
func FilterGetParamMin(h Handle, index uint32) float32 {
	p, ok := paramAt(h, index)
	if !ok {
		return 0
	}
	return p.min
}

func destroyFilter(h Handle, kind filterKind) {
	if f, ok := lookup[*filter](h); ok && f.kind == kind {
		objects.remove(h)
	}
}

func BassboostFilterCreate() Handle {
	return objects.insert(newFilter(kindBassboost))
}

func BassboostFilterDestroy(h Handle) {
	destroyFilter(h, kindBassboost)
}

// BassboostFilterSetParams sets the boost for voices started afterwards.
func BassboostFilterSetParams(h Handle, boost float32) int32 {
	f, ok := lookup[*filter](h)
	if !ok || f.kind != kindBassboost {
		return StatusInvalidParameter
	}
	if !inRange(f.table()[bassboostBoost], boost) {
		return StatusInvalidParameter
	}
	f.set(map[int]float32{bassboostBoost: boost})
	return StatusOK
}

func EchoFilterCreate() Handle {
	return objects.insert(newFilter(kindEcho))
}

func EchoFilterDestroy(h Handle) {
	destroyFilter(h, kindEcho)
}

// EchoFilterSetParams requires a positive delay, a decay in (0,1] and a
// filter in [0,1).
func EchoFilterSetParams(h Handle, delay, decay, filterAmount float32) int32 {
	f, ok := lookup[*filter](h)
	if !ok || f.kind != kindEcho {
		return StatusInvalidParameter
	}
	if !(delay > 0 && delay <= f.table()[echoDelay].max) ||
		!(decay > 0 && decay <= 1) ||
		!(filterAmount >= 0 && filterAmount < 1) {
		return StatusInvalidParameter
	}
	f.set(map[int]float32{echoDelay: delay, echoDecay: decay, echoFilter: filterAmount})
	return StatusOK
}

func inRange(p param, v float32) bool {
	return v >= p.min && v <= p.max
}

// filterInstance is a filter's state on one voice.
type filterInstance interface {
	beep.Streamer
	// setParam changes attribute attr; the value is already clamped.
	setParam(attr int, v float32)
}

// bassboostInstance runs a low shelf style peak around 80 Hz through beep's
// equalizer and blends it with the dry signal.
type bassboostInstance struct {
	in         beep.Streamer
	sampleRate beep.SampleRate

	wet   float64
	boost float64

	feed *feedStreamer
	eq   beep.Streamer
	dry  [][2]float64
}

const bassboostCenter = 80

func newBassboostInstance(in beep.Streamer, sampleRate int, values []float32) *bassboostInstance {
	b := &bassboostInstance{
		in:         in,
		sampleRate: beep.SampleRate(sampleRate),
		wet:        float64(values[bassboostWet]),
		feed:       &feedStreamer{},
	}
	b.setBoost(float64(values[bassboostBoost]))
	return b
}

func (b *bassboostInstance) setBoost(boost float64) {
	b.boost = boost
	if boost == 0 {
		b.eq = nil
		return
	}

	gain := 20 * math.Log10(1+boost)
	b.eq = effects.NewEqualizer(b.feed, b.sampleRate, effects.MonoEqualizerSections{
		{F0: bassboostCenter, Bf: bassboostCenter, GB: gain / 2, G0: 0, G: gain},
	})
}

func (b *bassboostInstance) setParam(attr int, v float32) {
	switch attr {
	case bassboostWet:
		b.wet = float64(v)
	case bassboostBoost:
		b.setBoost(float64(v))
	}
}

func (b *bassboostInstance) Stream(samples [][2]float64) (int, bool) {
	n, ok := b.in.Stream(samples)
	if n == 0 || b.eq == nil || b.wet == 0 {
		return n, ok
	}

	if cap(b.dry) < n {
		b.dry = make([][2]float64, n)
	}
	dry := b.dry[:n]
	copy(dry, samples[:n])

	b.feed.buf = dry
	b.eq.Stream(samples[:n])
	for i := range n {
		for c := range 2 {
			samples[i][c] = dry[i][c]*(1-b.wet) + samples[i][c]*b.wet
		}
	}
	return n, ok
}

func (b *bassboostInstance) Err() error { return b.in.Err() }

// feedStreamer hands out whatever buf holds, then silence.
type feedStreamer struct {
	buf [][2]float64
}

func (f *feedStreamer) Stream(samples [][2]float64) (int, bool) {
	n := copy(samples, f.buf)
	f.buf = f.buf[n:]
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (f *feedStreamer) Err() error { return nil }

// echoInstance is a feedback delay line with a one-pole low-pass in the loop.
type echoInstance struct {
	in         beep.Streamer
	sampleRate int

	wet, decay, filter float64

	line [][2]float64
	pos  int
	lp   [2]float64
}

func newEchoInstance(in beep.Streamer, sampleRate int, values []float32) *echoInstance {
	e := &echoInstance{
		in:         in,
		sampleRate: sampleRate,
		wet:        float64(values[echoWet]),
		decay:      float64(values[echoDecay]),
		filter:     float64(values[echoFilter]),
	}
	e.setDelay(values[echoDelay])
	return e
}

// delayFrames converts a delay to whole frames, at least one.
func delayFrames(seconds float32, sampleRate int) int {
	return max(1, int(math.Round(float64(seconds)*float64(sampleRate))))
}

func (e *echoInstance) setDelay(seconds float32) {
	frames := delayFrames(seconds, e.sampleRate)
	e.line = make([][2]float64, frames)
	e.pos = 0
}

func (e *echoInstance) setParam(attr int, v float32) {
	switch attr {
	case echoWet:
		e.wet = float64(v)
	case echoDelay:
		e.setDelay(v)
	case echoDecay:
		e.decay = float64(v)
	case echoFilter:
		e.filter = float64(v)
	}
}

func (e *echoInstance) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.in.Stream(samples)
	for i := range n {
		for c := range 2 {
			in := samples[i][c]
			y := in + e.line[e.pos][c]*e.decay
			y = y*(1-e.filter) + e.lp[c]*e.filter
			e.lp[c] = y
			e.line[e.pos][c] = y
			samples[i][c] = in*(1-e.wet) + y*e.wet
		}
		e.pos = (e.pos + 1) % len(e.line)
	}
	return n, ok
}

func (e *echoInstance) Err() error { return e.in.Err() }
