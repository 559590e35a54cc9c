// SPDX-License-Identifier: EPL-2.0

package native

// ColliderFunc returns the gain of a 3D voice at x, y, z relative to the
// listener. It runs on the mixing path.
type ColliderFunc func(x, y, z float32) float32

// AttenuatorFunc replaces the attenuation model of the sources it is
// attached to.
type AttenuatorFunc func(distance, minDistance, maxDistance, rolloff float32) float32

type collider struct {
	fn ColliderFunc
}

type attenuator struct {
	fn AttenuatorFunc
}

// ColliderCreate returns Null for a nil fn.
func ColliderCreate(fn ColliderFunc) Handle {
	if fn == nil {
		return Null
	}
	return objects.insert(&collider{fn: fn})
}

func ColliderDestroy(h Handle) {
	if _, ok := lookup[*collider](h); ok {
		objects.remove(h)
	}
}

// AttenuatorCreate returns Null for a nil fn.
func AttenuatorCreate(fn AttenuatorFunc) Handle {
	if fn == nil {
		return Null
	}
	return objects.insert(&attenuator{fn: fn})
}

func AttenuatorDestroy(h Handle) {
	if _, ok := lookup[*attenuator](h); ok {
		objects.remove(h)
	}
}
