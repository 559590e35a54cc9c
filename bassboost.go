// SPDX-License-Identifier: EPL-2.0

package soloud

import "github.com/ik5/soloud/internal/native"

// BassboostFilter lifts the low end. Parameters are indexed by BassboostAttr.
type BassboostFilter struct {
	filterBase
}

func NewBassboostFilter() (*BassboostFilter, error) {
	f := &BassboostFilter{}
	if err := acquire(f, &f.handle, "BassboostFilter", native.BassboostFilterCreate, native.BassboostFilterDestroy); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *BassboostFilter) filterHandle() native.Handle {
	if f == nil {
		return native.Null
	}
	return f.raw()
}

// SetParams sets the boost for voices started afterwards. boost must be in
// [0, 10].
func (f *BassboostFilter) SetParams(boost float32) error {
	return check("BassboostFilter.SetParams", native.BassboostFilterSetParams(f.raw(), boost))
}
