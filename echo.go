// SPDX-License-Identifier: EPL-2.0

package soloud

import "github.com/ik5/soloud/internal/native"

// EchoFilter is a feedback delay. Parameters are indexed by EchoAttr.
type EchoFilter struct {
	filterBase
}

func NewEchoFilter() (*EchoFilter, error) {
	f := &EchoFilter{}
	if err := acquire(f, &f.handle, "EchoFilter", native.EchoFilterCreate, native.EchoFilterDestroy); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *EchoFilter) filterHandle() native.Handle {
	if f == nil {
		return native.Null
	}
	return f.raw()
}

// SetParams configures voices started afterwards: delay in seconds (0, 10],
// decay per repeat in (0, 1], and filter, the low-pass amount in the
// feedback loop, in [0, 1).
func (f *EchoFilter) SetParams(delay, decay, filter float32) error {
	return check("EchoFilter.SetParams", native.EchoFilterSetParams(f.raw(), delay, decay, filter))
}
