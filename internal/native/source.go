// SPDX-License-Identifier: EPL-2.0

package native

import (
	"io"
	"sync"

	"github.com/ik5/soloud/internal/pcm"
)

// audioSource is implemented by every playable object in the arena.
type audioSource interface {
	base() *sourceBase
	// open starts a fresh stream positioned at the beginning.
	open() (pcm.Source, error)
}

// sourceAttrs are the attributes shared by all sources. A voice gets a copy
// when it starts.
type sourceAttrs struct {
	volume    float32
	looping   bool
	autoStop  bool
	loopPoint float64

	minDistance      float32
	maxDistance      float32
	attenuationModel uint32
	rolloff          float32
	doppler          float32
	listenerRelative bool
	distanceDelay    int32
	collider         Handle
	attenuator       Handle

	mustTick bool
	kill     bool

	filters [FiltersPerStream]Handle
}

type sourceBase struct {
	mu    sync.Mutex
	attrs sourceAttrs

	// engine is the last engine that played this source; Stop reaches
	// voices through it.
	engine *engine
}

func newSourceBase() sourceBase {
	return sourceBase{attrs: sourceAttrs{
		volume:      1,
		autoStop:    true,
		minDistance: 1,
		maxDistance: 1000000,
		rolloff:     1,
		doppler:     1,
	}}
}

func (b *sourceBase) base() *sourceBase { return b }

func (b *sourceBase) snapshot() sourceAttrs {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.attrs
}

func withSource(h Handle, fn func(a *sourceAttrs)) {
	src, ok := lookup[audioSource](h)
	if !ok {
		return
	}
	b := src.base()
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.attrs)
}

func AudioSourceSetVolume(h Handle, volume float32) {
	withSource(h, func(a *sourceAttrs) { a.volume = volume })
}

func AudioSourceSetLooping(h Handle, flag bool) {
	withSource(h, func(a *sourceAttrs) { a.looping = flag })
}

func AudioSourceSetAutoStop(h Handle, flag bool) {
	withSource(h, func(a *sourceAttrs) { a.autoStop = flag })
}

func AudioSourceSet3DMinMaxDistance(h Handle, minDistance, maxDistance float32) {
	withSource(h, func(a *sourceAttrs) {
		a.minDistance = minDistance
		a.maxDistance = maxDistance
	})
}

func AudioSourceSet3DAttenuation(h Handle, model uint32, rolloff float32) {
	withSource(h, func(a *sourceAttrs) {
		a.attenuationModel = model
		a.rolloff = rolloff
	})
}

func AudioSourceSet3DDopplerFactor(h Handle, factor float32) {
	withSource(h, func(a *sourceAttrs) { a.doppler = factor })
}

func AudioSourceSet3DListenerRelative(h Handle, flag bool) {
	withSource(h, func(a *sourceAttrs) { a.listenerRelative = flag })
}

func AudioSourceSet3DDistanceDelay(h Handle, delay int32) {
	withSource(h, func(a *sourceAttrs) { a.distanceDelay = delay })
}

// AudioSourceSet3DCollider attaches collider; Null detaches.
func AudioSourceSet3DCollider(h Handle, collider Handle) {
	withSource(h, func(a *sourceAttrs) { a.collider = collider })
}

// AudioSourceSet3DAttenuator attaches attenuator; Null detaches.
func AudioSourceSet3DAttenuator(h Handle, attenuator Handle) {
	withSource(h, func(a *sourceAttrs) { a.attenuator = attenuator })
}

func AudioSourceSetInaudibleBehavior(h Handle, mustTick, kill bool) {
	withSource(h, func(a *sourceAttrs) {
		a.mustTick = mustTick
		a.kill = kill
	})
}

func AudioSourceSetLoopPoint(h Handle, seconds float64) {
	withSource(h, func(a *sourceAttrs) { a.loopPoint = seconds })
}

func AudioSourceGetLoopPoint(h Handle) float64 {
	var p float64
	withSource(h, func(a *sourceAttrs) { p = a.loopPoint })
	return p
}

// AudioSourceSetFilter puts filter in slot id. Null clears the slot; ids past
// FiltersPerStream are ignored.
func AudioSourceSetFilter(h Handle, id uint32, filter Handle) {
	if id >= FiltersPerStream {
		return
	}
	withSource(h, func(a *sourceAttrs) { a.filters[id] = filter })
}

// AudioSourceGetFilter returns the filter in slot id, or Null.
func AudioSourceGetFilter(h Handle, id uint32) Handle {
	if id >= FiltersPerStream {
		return Null
	}
	var f Handle
	withSource(h, func(a *sourceAttrs) { f = a.filters[id] })
	return f
}

// AudioSourceStop stops every voice of h on the engine that last played it.
func AudioSourceStop(h Handle) {
	src, ok := lookup[audioSource](h)
	if !ok {
		return
	}
	b := src.base()
	b.mu.Lock()
	e := b.engine
	b.mu.Unlock()

	if e != nil {
		e.stopSource(h)
	}
}

// destroySource stops the source's voices and frees its slot.
func destroySource(h Handle) {
	AudioSourceStop(h)
	objects.remove(h)
}

// looper restarts a finite stream at the loop point when it runs out.
type looper struct {
	open      func() (pcm.Source, error)
	cur       pcm.Source
	loopPoint float64
}

func newLooper(open func() (pcm.Source, error), loopPoint float64) (*looper, error) {
	cur, err := open()
	if err != nil {
		return nil, err
	}
	return &looper{open: open, cur: cur, loopPoint: loopPoint}, nil
}

func (l *looper) SampleRate() int { return l.cur.SampleRate() }
func (l *looper) Channels() int   { return l.cur.Channels() }
func (l *looper) Close() error    { return l.cur.Close() }

func (l *looper) ReadSamples(dst []float32) (int, error) {
	// a second pass covers a restart that lands exactly on the end
	for range 2 {
		n, err := l.cur.ReadSamples(dst)
		if err != io.EOF {
			return n, err
		}
		if n > 0 {
			return n, nil
		}
		if err := l.restart(); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

// restart reopens the stream and skips to the loop point. A loop point past
// the end restarts from the beginning.
func (l *looper) restart() error {
	_ = l.cur.Close()

	next, err := l.open()
	if err != nil {
		return err
	}
	l.cur = next

	skip := int(l.loopPoint*float64(next.SampleRate())) * next.Channels()
	if skip <= 0 {
		return nil
	}

	scratch := make([]float32, 4096-4096%next.Channels())
	for skip > 0 {
		n, err := next.ReadSamples(scratch[:min(len(scratch), skip)])
		skip -= n
		if err == io.EOF {
			_ = next.Close()
			if l.cur, err = l.open(); err != nil {
				return err
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
