// SPDX-License-Identifier: EPL-2.0

package native

import "sync"

// Handle is an opaque reference to an engine object. Zero is null.
//
// The low 32 bits hold slot index + 1, the high 32 bits the slot generation.
type Handle uint64

// Null is the handle no object ever has.
const Null Handle = 0

// DefaultCapacity bounds the number of live objects.
const DefaultCapacity = 1 << 16

type slot struct {
	gen uint32
	obj any
}

type arena struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32
	live  int
	limit int
}

var objects = &arena{limit: DefaultCapacity}

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index+1))
}

func (h Handle) split() (index, gen uint32, ok bool) {
	low := uint32(h)
	if low == 0 {
		return 0, 0, false
	}
	return low - 1, uint32(h >> 32), true
}

// insert stores obj and returns its handle, or Null once the arena is full.
func (a *arena) insert(obj any) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.live >= a.limit {
		return Null
	}

	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}

	s := &a.slots[index]
	s.gen++
	s.obj = obj
	a.live++

	return makeHandle(index, s.gen)
}

func (a *arena) get(h Handle) any {
	index, gen, ok := h.split()
	if !ok {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if int(index) >= len(a.slots) || a.slots[index].gen != gen {
		return nil
	}
	return a.slots[index].obj
}

// remove releases the slot behind h and returns what it held.
func (a *arena) remove(h Handle) any {
	index, gen, ok := h.split()
	if !ok {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if int(index) >= len(a.slots) || a.slots[index].gen != gen || a.slots[index].obj == nil {
		return nil
	}

	s := &a.slots[index]
	obj := s.obj
	s.obj = nil
	// a bumped generation makes every copy of h stale
	s.gen++
	a.free = append(a.free, index)
	a.live--

	return obj
}

func lookup[T any](h Handle) (T, bool) {
	obj, ok := objects.get(h).(T)
	return obj, ok
}

// SetCapacity changes how many objects may be live at once and returns the
// previous limit.
func SetCapacity(n int) int {
	objects.mu.Lock()
	defer objects.mu.Unlock()

	prev := objects.limit
	objects.limit = n
	return prev
}

// LiveObjects reports how many handles are currently live.
func LiveObjects() int {
	objects.mu.Lock()
	defer objects.mu.Unlock()

	return objects.live
}

// IsLive reports whether h refers to a live object.
func IsLive(h Handle) bool {
	return objects.get(h) != nil
}
