// SPDX-License-Identifier: EPL-2.0

package soloud

import (
	"io"

	"github.com/ik5/soloud/internal/native"
)

// AudioSource is anything the engine can play. Setters push state to the
// engine and cannot fail; voices pick the state up when they start.
//
// Sources are not safe for concurrent mutation.
type AudioSource interface {
	io.Closer

	SetVolume(volume float32)
	SetLooping(flag bool)
	SetAutoStop(flag bool)

	// 3D parameters are forwarded unvalidated. The engine clamps distances
	// when it evaluates the attenuation model.
	Set3DMinMaxDistance(minDistance, maxDistance float32)
	Set3DAttenuation(model AttenuationModel, rolloff float32)
	Set3DDopplerFactor(factor float32)
	Set3DListenerRelative(flag bool)
	Set3DDistanceDelay(delay int32)

	// Set3DCollider attaches c, or detaches on nil. c must stay open while
	// attached; the engine calls it from the mixing path.
	Set3DCollider(c *Collider)
	// Set3DAttenuator attaches a, or detaches on nil, under the same rules
	// as Set3DCollider.
	Set3DAttenuator(a *Attenuator)

	SetInaudibleBehavior(mustTick, kill bool)
	SetLoopPoint(seconds float64)
	LoopPoint() float64

	// SetFilter puts f in slot id, replacing whatever was there. A nil f,
	// typed or not, clears the slot. Sources have FiltersPerStream slots; other
	// ids are ignored.
	SetFilter(id uint32, f Filter)

	// Stop halts every voice playing this source.
	Stop()

	sourceHandle() native.Handle
}

// LoadableSource is an AudioSource backed by decoded audio data.
type LoadableSource interface {
	AudioSource

	// Load reads the file at path. A path containing a NUL byte fails with
	// ClassEncoding before the engine is reached.
	Load(path string) error
	// LoadMem copies data; the caller keeps ownership of its slice.
	LoadMem(data []byte) error
	// LoadMemUnsafe exposes the engine's ownership flags. With copyData
	// false the engine keeps reading data, which must then stay unmodified
	// for as long as it is loaded. With takeOwnership true the engine
	// considers data its own and drops it on reload or Close.
	LoadMemUnsafe(data []byte, copyData, takeOwnership bool) error
}

// Filter is a DSP effect that can be attached to a source's filter slots.
type Filter interface {
	io.Closer

	ParamCount() int32
	// ParamName returns false for an index at or past ParamCount.
	ParamName(index uint32) (string, bool)
	ParamType(index uint32) ParamType
	ParamMax(index uint32) float32
	ParamMin(index uint32) float32

	filterHandle() native.Handle
}
