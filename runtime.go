// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Runtime is the façade that owns an [Executor] and a diagnostics logger
// and drives the trampoline. Construct one with [New]; the zero value is
// not usable.
type Runtime struct {
	executor          Executor
	logger            *slog.Logger
	scopeDrainTimeout time.Duration
}

// RuntimeOption configures a [Runtime] built by [New], following the
// functional-options idiom go-sup's Supervisor builder methods
// (SetLauncher, SetReturnOnEmpty, SetErrorReactor) express as a chain of
// setters — collapsed here into options since this façade's configuration
// surface is much smaller than a general task supervisor's.
type RuntimeOption func(*Runtime)

// WithExecutor overrides the default [GoroutineExecutor].
func WithExecutor(e Executor) RuntimeOption {
	return func(rt *Runtime) { rt.executor = e }
}

// WithLogger installs a diagnostics logger. Passing nil silences
// diagnostics entirely.
func WithLogger(l *slog.Logger) RuntimeOption {
	return func(rt *Runtime) { rt.logger = l }
}

// WithScopeDrainTimeout bounds how long a [Scoped] block's exit protocol
// waits for outstanding fibers to observe cancellation and settle, once
// exit has already cancelled them.
func WithScopeDrainTimeout(d time.Duration) RuntimeOption {
	return func(rt *Runtime) { rt.scopeDrainTimeout = d }
}

// New builds a Runtime with a [GoroutineExecutor], a default diagnostics
// logger, and a 30-second scope drain timeout, then applies opts.
func New(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		executor:          GoroutineExecutor{},
		logger:            newDiagnosticsLogger(),
		scopeDrainTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Executor returns the runtime's configured Executor.
func (rt *Runtime) Executor() Executor { return rt.executor }

// Run executes e synchronously to completion under a fresh root
// ExecutionContext, re-raising any terminal error.
func Run[A any](rt *Runtime, e Effect[A]) (A, error) {
	ec := RootContext()
	v, err := evalEffect(rt, ec, e.n)
	if err != nil {
		var zero A
		return zero, err
	}
	return v.(A), nil
}

// RunWithHandler executes e synchronously with h installed as the
// capability handler for the whole computation.
func RunWithHandler[A any](rt *Runtime, e Effect[A], h CapabilityHandler) (A, error) {
	ec := RootContext().WithHandler(h)
	v, err := evalEffect(rt, ec, e.n)
	if err != nil {
		var zero A
		return zero, err
	}
	return v.(A), nil
}

// CancellationHandle lets asynchronous callers cancel or await a
// [RunAsync] computation from outside the effect tree.
type CancellationHandle[A any] struct {
	ec        *ExecutionContext
	done      chan struct{}
	value     A
	err       error
	cancelled *Affine[struct{}, struct{}]
}

// Cancel requests cancellation of the underlying computation. Idempotent.
func (h *CancellationHandle[A]) Cancel() {
	h.cancelled.TryResume(struct{}{})
}

// IsCancelled reports whether Cancel has been called.
func (h *CancellationHandle[A]) IsCancelled() bool { return h.ec.IsCancelled() }

// Await blocks until the computation settles or ctx is done.
func (h *CancellationHandle[A]) Await(ctx context.Context) (A, error) {
	select {
	case <-h.done:
		return h.value, h.err
	case <-ctx.Done():
		var zero A
		return zero, ctx.Err()
	}
}

// AwaitTimeout blocks for at most d for the computation to settle.
func (h *CancellationHandle[A]) AwaitTimeout(d time.Duration) (A, error, bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-h.done:
		return h.value, h.err, true
	case <-timer.C:
		var zero A
		return zero, nil, false
	}
}

// RunAsync launches e on rt's Executor and returns immediately with a
// CancellationHandle. onOk is invoked with the result on success and onErr
// with the terminal error on failure — but only if the handle was not
// cancelled first: matching spec.md §4.H/S8, a cancel suppresses the
// user-visible callback entirely, though the internal completion still
// fires so Await/AwaitTimeout resolve. Either callback may be nil.
func RunAsync[A any](rt *Runtime, e Effect[A], onOk func(A), onErr func(error)) *CancellationHandle[A] {
	ec := RootContext()
	h := &CancellationHandle[A]{ec: ec, done: make(chan struct{})}
	h.cancelled = Once(func(struct{}) struct{} {
		ec.Cancel()
		return struct{}{}
	})
	rt.executor.Go(func() {
		v, err := safeEvalEffect(rt, ec, e.n)
		if err == nil {
			h.value = v.(A)
		}
		h.err = err
		close(h.done)
		if errors.Is(err, ErrCancelled) {
			return
		}
		if err == nil {
			if onOk != nil {
				onOk(h.value)
			}
		} else if onErr != nil {
			onErr(err)
		}
	})
	return h
}

// ExecuteFork runs e on rt's Executor as a bare fiber outside any scope,
// for the rare case where a caller wants the Executor abstraction without
// the structured-concurrency guarantees an EffectScope provides.
func ExecuteFork[A any](rt *Runtime, ec *ExecutionContext, e Effect[A]) *Fiber[A] {
	childCtx, cancel := context.WithCancel(ec.ctx)
	fiberEC := ec.withDerivedContext(childCtx, cancel)
	fb := newFiber[A](cancel)
	rt.executor.Go(func() {
		v, err := safeEvalEffect(rt, fiberEC, e.n)
		var typed A
		if err == nil {
			typed = v.(A)
		}
		fb.complete(typed, err)
	})
	return fb
}
