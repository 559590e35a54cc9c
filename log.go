// SPDX-License-Identifier: EPL-2.0

package soloud

import (
	"log/slog"
	"sync/atomic"
)

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	SetLogger(nil)
}

// SetLogger routes the package's debug output to l. nil discards it, which
// is the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	pkgLogger.Store(l)
}

func logger() *slog.Logger {
	return pkgLogger.Load()
}
