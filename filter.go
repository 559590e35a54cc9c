// SPDX-License-Identifier: EPL-2.0

package soloud

import "github.com/ik5/soloud/internal/native"

// filterBase implements Filter for every concrete filter except
// filterHandle, which each type defines so a typed nil detaches.
type filterBase struct {
	handle
}

func (f *filterBase) ParamCount() int32 {
	return native.FilterGetParamCount(f.raw())
}

func (f *filterBase) ParamName(index uint32) (string, bool) {
	name := native.FilterGetParamName(f.raw(), index)
	if name == nil {
		return "", false
	}
	return native.GoString(name), true
}

func (f *filterBase) ParamType(index uint32) ParamType {
	return ParamType(native.FilterGetParamType(f.raw(), index))
}

func (f *filterBase) ParamMax(index uint32) float32 {
	return native.FilterGetParamMax(f.raw(), index)
}

func (f *filterBase) ParamMin(index uint32) float32 {
	return native.FilterGetParamMin(f.raw(), index)
}

// Param describes one filter parameter.
type Param struct {
	Index    uint32
	Name     string
	Type     ParamType
	Min, Max float32
}

// Params lists every parameter of f.
func Params(f Filter) []Param {
	n := f.ParamCount()
	params := make([]Param, 0, n)
	for i := range uint32(max(n, 0)) {
		name, _ := f.ParamName(i)
		params = append(params, Param{
			Index: i,
			Name:  name,
			Type:  f.ParamType(i),
			Min:   f.ParamMin(i),
			Max:   f.ParamMax(i),
		})
	}
	return params
}
