// SPDX-License-Identifier: EPL-2.0

package soloud

import (
	"runtime"

	"github.com/ik5/soloud/internal/native"
)

// handle owns exactly one engine object. Every concrete type embeds one.
type handle struct {
	h       native.Handle
	kind    string
	destroy func(native.Handle)
	cleanup runtime.Cleanup
}

// acquire creates the engine object behind owner. The object is destroyed by
// Close, or when owner is collected without being closed.
func acquire[T any](owner *T, h *handle, kind string, create func() native.Handle, destroy func(native.Handle)) error {
	raw := create()
	if raw == native.Null {
		logger().Debug("handle allocation failed", "kind", kind)
		return unknownError("could not create " + kind)
	}

	*h = handle{h: raw, kind: kind, destroy: destroy}
	h.cleanup = runtime.AddCleanup(owner, destroy, raw)
	logger().Debug("handle acquired", "kind", kind, "handle", uint64(raw))
	return nil
}

// raw returns the engine handle. Using a closed or zero value object is a
// programming error and panics.
func (h *handle) raw() native.Handle {
	if h.h == native.Null {
		kind := h.kind
		if kind == "" {
			kind = "object"
		}
		panic("soloud: use of closed or uninitialized " + kind)
	}
	return h.h
}

// Close destroys the engine object. Later calls do nothing.
func (h *handle) Close() error {
	raw := h.h
	if raw == native.Null {
		return nil
	}
	// null first so nothing reached from destroy can see a live handle
	h.h = native.Null
	h.cleanup.Stop()
	h.destroy(raw)
	logger().Debug("handle released", "kind", h.kind, "handle", uint64(raw))
	return nil
}
