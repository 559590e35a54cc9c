// SPDX-License-Identifier: EPL-2.0

package soloud

import (
	"bytes"
	"io"

	"github.com/ik5/soloud/internal/native"
)

// FiltersPerStream is the number of filter slots on a source.
const FiltersPerStream = native.FiltersPerStream

// cString converts s for the boundary, rejecting embedded NULs.
func cString(s string) ([]byte, error) {
	if i := bytes.IndexByte([]byte(s), 0); i >= 0 {
		return nil, encodingError(i)
	}
	return native.CString(s), nil
}

// LoadFrom reads r to the end and hands the bytes to src. A read failure is
// returned as ClassIO.
func LoadFrom(src LoadableSource, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return ioError(err)
	}
	return src.LoadMemUnsafe(data, false, true)
}
