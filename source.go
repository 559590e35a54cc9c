// SPDX-License-Identifier: EPL-2.0

package soloud

import "github.com/ik5/soloud/internal/native"

// audioSource implements AudioSource for every concrete source.
type audioSource struct {
	handle
}

func (s *audioSource) sourceHandle() native.Handle { return s.raw() }

func (s *audioSource) SetVolume(volume float32) {
	native.AudioSourceSetVolume(s.raw(), volume)
}

func (s *audioSource) SetLooping(flag bool) {
	native.AudioSourceSetLooping(s.raw(), flag)
}

func (s *audioSource) SetAutoStop(flag bool) {
	native.AudioSourceSetAutoStop(s.raw(), flag)
}

func (s *audioSource) Set3DMinMaxDistance(minDistance, maxDistance float32) {
	native.AudioSourceSet3DMinMaxDistance(s.raw(), minDistance, maxDistance)
}

func (s *audioSource) Set3DAttenuation(model AttenuationModel, rolloff float32) {
	native.AudioSourceSet3DAttenuation(s.raw(), uint32(model), rolloff)
}

func (s *audioSource) Set3DDopplerFactor(factor float32) {
	native.AudioSourceSet3DDopplerFactor(s.raw(), factor)
}

func (s *audioSource) Set3DListenerRelative(flag bool) {
	native.AudioSourceSet3DListenerRelative(s.raw(), flag)
}

func (s *audioSource) Set3DDistanceDelay(delay int32) {
	native.AudioSourceSet3DDistanceDelay(s.raw(), delay)
}

func (s *audioSource) Set3DCollider(c *Collider) {
	raw := native.Null
	if c != nil {
		raw = c.raw()
	}
	native.AudioSourceSet3DCollider(s.raw(), raw)
}

func (s *audioSource) Set3DAttenuator(a *Attenuator) {
	raw := native.Null
	if a != nil {
		raw = a.raw()
	}
	native.AudioSourceSet3DAttenuator(s.raw(), raw)
}

func (s *audioSource) SetInaudibleBehavior(mustTick, kill bool) {
	native.AudioSourceSetInaudibleBehavior(s.raw(), mustTick, kill)
}

func (s *audioSource) SetLoopPoint(seconds float64) {
	native.AudioSourceSetLoopPoint(s.raw(), seconds)
}

func (s *audioSource) LoopPoint() float64 {
	return native.AudioSourceGetLoopPoint(s.raw())
}

func (s *audioSource) SetFilter(id uint32, f Filter) {
	raw := native.Null
	if f != nil {
		raw = f.filterHandle()
	}
	native.AudioSourceSetFilter(s.raw(), id, raw)
}

func (s *audioSource) Stop() {
	native.AudioSourceStop(s.raw())
}

// loader implements LoadableSource on top of a type's load entry points.
type loader struct {
	audioSource

	loadPath func(native.Handle, []byte) int32
	loadMem  func(h native.Handle, data []byte, copyData, takeOwnership bool) int32
}

func (l *loader) Load(path string) error {
	cpath, err := cString(path)
	if err != nil {
		return err
	}
	return check(l.kind+".Load", l.loadPath(l.raw(), cpath))
}

func (l *loader) LoadMem(data []byte) error {
	return l.LoadMemUnsafe(data, true, true)
}

func (l *loader) LoadMemUnsafe(data []byte, copyData, takeOwnership bool) error {
	return check(l.kind+".LoadMem", l.loadMem(l.raw(), data, copyData, takeOwnership))
}
