// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"errors"
	"fmt"
)

// ErrCancelled is the sentinel returned when a computation's outcome was
// determined by cancellation rather than by Fail or a failing capability.
// Cancellation is structural: it is detected with errors.Is, never
// observed by Fold, CatchAll, or MapError, which only ever see ordinary
// domain failures.
var ErrCancelled = errors.New("effect: cancelled")

// ErrCapabilityRejected is the sentinel a CapabilityHandler returns to
// signal it does not recognize an operation, distinct from the handler
// recognizing the operation and failing it. OrElse and Compose use
// errors.Is against this sentinel to decide whether to try the next
// handler in a fallback chain.
var ErrCapabilityRejected = errors.New("effect: capability rejected")

// HostRuntimeError wraps a value recovered from a panicking Suspend thunk
// or generator function. It is a programmer error, not a domain error —
// spec.md flags this distinction as worth preserving even though the
// panicking code itself is host-language-specific.
type HostRuntimeError struct {
	Recovered any
	Stack     []byte
}

func (e *HostRuntimeError) Error() string {
	return fmt.Sprintf("effect: recovered panic: %v", e.Recovered)
}

func (e *HostRuntimeError) Unwrap() error {
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}

// Either represents a value that is either Left (typically an error) or
// Right (typically a success). It exists solely as the data container
// [Attempt] needs to reify a failure into an ordinary value — spec.md's
// "trivial" carve-out, not a general-purpose functional-error type.
type Either[E, A any] struct {
	isRight bool
	left    E
	right   A
}

// Left creates a Left value.
func Left[E, A any](e E) Either[E, A] { return Either[E, A]{isRight: false, left: e} }

// Right creates a Right value.
func Right[E, A any](a A) Either[E, A] { return Either[E, A]{isRight: true, right: a} }

// IsRight reports whether e is a Right value.
func (e Either[E, A]) IsRight() bool { return e.isRight }

// IsLeft reports whether e is a Left value.
func (e Either[E, A]) IsLeft() bool { return !e.isRight }

// GetRight returns the Right value and true, or the zero value and false.
func (e Either[E, A]) GetRight() (A, bool) {
	if e.isRight {
		return e.right, true
	}
	var zero A
	return zero, false
}

// GetLeft returns the Left value and true, or the zero value and false.
func (e Either[E, A]) GetLeft() (E, bool) {
	if !e.isRight {
		return e.left, true
	}
	var zero E
	return zero, false
}

// MatchEither pattern-matches on e, calling onLeft or onRight.
func MatchEither[E, A, T any](e Either[E, A], onLeft func(E) T, onRight func(A) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}
