// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// newDiagnosticsLogger builds the runtime's default diagnostics logger for
// runtime warnings (leaked fibers, missing handlers, recovered panics):
// a text handler on stderr, fanned out through slog-multi to any extra
// handlers passed in. [WithLogger] replaces this logger outright; it does
// not add a handler alongside the stderr output — grounded on
// _examples/reusee-tai/logs/logger.go's use of slogmulti.Fanout to
// combine a terminal handler with a supplementary one.
func newDiagnosticsLogger(extra ...slog.Handler) *slog.Logger {
	handlers := append([]slog.Handler{slog.NewTextHandler(os.Stderr, nil)}, extra...)
	return slog.New(slogmulti.Fanout(handlers...))
}

// warn emits a runtime diagnostic. Diagnostics are an observational side
// channel: nothing in the trampoline consults them, and a caller's logger
// misbehaving (panicking, blocking) is the caller's problem, not the
// runtime's.
func (rt *Runtime) warn(msg string, args ...any) {
	if rt.logger == nil {
		return
	}
	rt.logger.Warn(msg, args...)
}
