// SPDX-License-Identifier: EPL-2.0

package soloud

import "github.com/ik5/soloud/internal/native"

// ColliderFunc returns a gain for a 3D voice at x, y, z relative to the
// listener. It is called from the mixing path, possibly concurrently with
// the caller.
type ColliderFunc func(x, y, z float32) float32

// AttenuatorFunc computes the distance gain for the sources it is attached
// to, replacing their attenuation model.
type AttenuatorFunc func(distance, minDistance, maxDistance, rolloff float32) float32

// Collider is a gain callback attached with AudioSource.Set3DCollider.
type Collider struct {
	handle
}

func NewCollider(fn ColliderFunc) (*Collider, error) {
	if fn == nil {
		return nil, internalError(InvalidParameter)
	}
	c := &Collider{}
	create := func() native.Handle { return native.ColliderCreate(native.ColliderFunc(fn)) }
	if err := acquire(c, &c.handle, "Collider", create, native.ColliderDestroy); err != nil {
		return nil, err
	}
	return c, nil
}

// Attenuator is a distance model attached with AudioSource.Set3DAttenuator.
type Attenuator struct {
	handle
}

func NewAttenuator(fn AttenuatorFunc) (*Attenuator, error) {
	if fn == nil {
		return nil, internalError(InvalidParameter)
	}
	a := &Attenuator{}
	create := func() native.Handle { return native.AttenuatorCreate(native.AttenuatorFunc(fn)) }
	if err := acquire(a, &a.handle, "Attenuator", create, native.AttenuatorDestroy); err != nil {
		return nil, err
	}
	return a, nil
}
