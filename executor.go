// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Executor is the pluggable facility a [Runtime] uses to launch the
// top-level goroutine backing [RunAsync] and [ExecuteFork] (and so [Fork]).
// spec.md frames the executor as an opaque external collaborator the
// runtime assumes can accommodate at least as many concurrent tasks as
// the program forks at its peak — a caller-supplied bounded Executor that
// cannot keep that assumption does so at its own risk.
//
// Fibers forked with [ForkIn] into a [Scoped] block's scope are launched through
// golang.org/x/sync/errgroup instead of through Executor, since errgroup
// already owns goroutine lifecycle for its group; Executor is exercised at
// the runtime-facade boundary, grounded on go-sup's
// EngineBuilder.SetLauncher concept (_examples/warpfork-go-sup/engine.go).
type Executor interface {
	Go(f func())
}

// GoroutineExecutor is the default Executor: every task gets its own
// goroutine, unbounded.
type GoroutineExecutor struct{}

// Go implements Executor.
func (GoroutineExecutor) Go(f func()) { go f() }
