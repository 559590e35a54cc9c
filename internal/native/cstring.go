// SPDX-License-Identifier: EPL-2.0

package native

import "bytes"

// CString returns s as a NUL-terminated byte slice. Callers must have
// rejected embedded NULs already; anything after one is not seen here.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// GoString reads b up to its first NUL.
func GoString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
