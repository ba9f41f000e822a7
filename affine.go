// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync/atomic"

// Affine wraps a continuation with one-shot enforcement. It backs every
// idempotent-cancellation guard in this package (Fiber.Interrupt,
// CancellationHandle.Cancel) — resuming twice is a programmer error that
// panics rather than silently double-firing side effects like closing a
// context twice.
type Affine[R, A any] struct {
	used   atomic.Uintptr
	resume func(A) R
}

// Once creates an affine continuation from a regular continuation.
func Once[R, A any](k func(A) R) *Affine[R, A] {
	return &Affine[R, A]{resume: k}
}

// Resume invokes the continuation with v. Panics if already used.
func (a *Affine[R, A]) Resume(v A) R {
	if a.used.Add(1) != 1 {
		panic("effect: affine continuation resumed twice")
	}
	return a.resume(v)
}

// TryResume attempts to invoke the continuation, returning (result, true)
// on success or (zero, false) if already used.
func (a *Affine[R, A]) TryResume(v A) (R, bool) {
	if a.used.Add(1) != 1 {
		var zero R
		return zero, false
	}
	return a.resume(v), true
}

// Discard marks the continuation as used without invoking it.
func (a *Affine[R, A]) Discard() {
	a.used.Store(1)
}
