// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
)

// FiberStatus is the lifecycle of a [Fiber]: running until it settles into
// exactly one of completed, failed, or interrupted — matching spec.md's
// Fiber lifecycle exactly.
type FiberStatus int32

const (
	FiberRunning FiberStatus = iota
	FiberCompleted
	FiberFailed
	FiberInterrupted
)

// Fiber is a handle to a forked computation. Its identifier is stable for
// the lifetime of the fiber — grounded on
// _examples/reusee-tai's use of github.com/google/uuid for exactly this
// purpose, per SPEC_FULL.md's domain-stack wiring.
type Fiber[A any] struct {
	id        uuid.UUID
	done      chan struct{}
	value     A
	err       error
	status    atomic.Int32
	cancel    context.CancelFunc
	interrupt *Affine[struct{}, struct{}]
}

func newFiber[A any](cancel context.CancelFunc) *Fiber[A] {
	f := &Fiber[A]{id: uuid.New(), done: make(chan struct{}), cancel: cancel}
	f.status.Store(int32(FiberRunning))
	f.interrupt = Once(func(struct{}) struct{} {
		cancel()
		return struct{}{}
	})
	return f
}

// ID returns the fiber's stable identifier.
func (f *Fiber[A]) ID() uuid.UUID { return f.id }

// Status reports the fiber's current lifecycle state.
func (f *Fiber[A]) Status() FiberStatus { return FiberStatus(f.status.Load()) }

func (f *Fiber[A]) complete(v A, err error) {
	f.value, f.err = v, err
	switch {
	case err == nil:
		f.status.Store(int32(FiberCompleted))
	case errors.Is(err, ErrCancelled):
		f.status.Store(int32(FiberInterrupted))
	default:
		f.status.Store(int32(FiberFailed))
	}
	close(f.done)
}

// Join blocks until the fiber settles or ctx is done, whichever comes
// first. Joining a settled fiber returns immediately. This is the eager,
// blocking primitive JoinEffect and internal callers build on; most user
// code should prefer JoinEffect so a fiber composes into an effect tree.
func (f *Fiber[A]) Join(ctx context.Context) (A, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero A
		return zero, ctx.Err()
	}
}

// JoinEffect returns an effect that, on execution, blocks until the fiber
// settles, then replays its terminal value or error. Matches spec.md
// §3/§4.F's join() and original_source/roux/Fiber.java's
// `Effect<E,A> join()`, which FiberRuntime.java:30-52 builds as a bare
// `Effect.suspend(() -> resultFuture.get())` around the fiber's own
// completion signal.
func (f *Fiber[A]) JoinEffect() Effect[A] {
	return Suspend(func() (A, error) { return f.awaitBlocking() })
}

// awaitBlocking joins with no cancellation escape hatch, for internal
// callers (ZipPar and friends) that have already forked into a scope whose
// own cancellation will unblock the fiber if needed.
func (f *Fiber[A]) awaitBlocking() (A, error) {
	<-f.done
	return f.value, f.err
}

// Interrupt requests cancellation of the fiber's ExecutionContext.
// Idempotent: interrupting an already-interrupted or already-settled
// fiber is a no-op, guarded by the same one-shot [Affine] discipline
// [CancellationHandle.Cancel] uses. This is the eager primitive
// InterruptEffect builds on.
func (f *Fiber[A]) Interrupt() {
	f.interrupt.TryResume(struct{}{})
}

// InterruptEffect returns an effect that, on execution, atomically flips
// the fiber to interrupted and requests cancellation of its
// ExecutionContext — a no-op if the fiber is already interrupted or has
// already settled. Matches spec.md §3/§4.F's interrupt() and
// original_source/roux/Fiber.java's `Effect<Throwable, Unit> interrupt()`,
// built as `Effect.suspend(() -> { ... compareAndSet ... })` in
// FiberRuntime.java:59-64.
func (f *Fiber[A]) InterruptEffect() Effect[unit] {
	return Suspend(func() (unit, error) {
		f.Interrupt()
		return Unit, nil
	})
}
