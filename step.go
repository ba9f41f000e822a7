// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync/atomic"

// Suspension represents a computation paused at a capability perform. It
// holds the pending operation and a one-shot resumption handle, enforcing
// affine semantics exactly as kont's Suspension does
// (hayabusa-cloud-kont, step.go): Resume/ResumeErr may each be called at
// most once total across the pair.
type Suspension[A any] struct {
	used  atomic.Uint32
	op    any
	rt    *Runtime
	ec    *ExecutionContext
	stack []contFrame
}

// Op returns the capability request that caused the suspension.
func (s *Suspension[A]) Op() any { return s.op }

// Resume advances the computation by supplying the handler's result for
// the pending capability. Panics if already resumed or discarded.
func (s *Suspension[A]) Resume(result any) (A, *Suspension[A], error) {
	s.markUsed()
	return s.resumeWith(result, false, nil)
}

// ResumeErr advances the computation by failing the pending capability
// with err, exactly as if a CapabilityHandler had returned err.
func (s *Suspension[A]) ResumeErr(err error) (A, *Suspension[A], error) {
	s.markUsed()
	return s.resumeWith(nil, true, err)
}

// Discard marks the suspension as consumed without resuming it.
func (s *Suspension[A]) Discard() { s.used.Store(1) }

func (s *Suspension[A]) markUsed() {
	if !s.used.CompareAndSwap(0, 1) {
		panic("effect: suspension resumed twice")
	}
}

func (s *Suspension[A]) resumeWith(val Erased, hasErr bool, errv error) (A, *Suspension[A], error) {
	v, err, op, stack, suspended := runLoop(s.rt, s.ec, s.stack, nil, true, val, hasErr, errv, true)
	if suspended {
		return zeroOf[A](), &Suspension[A]{rt: s.rt, ec: s.ec, stack: stack, op: op}, nil
	}
	if err != nil {
		return zeroOf[A](), nil, err
	}
	return v.(A), nil, nil
}

// Step drives e one capability perform at a time instead of to completion,
// for embedding the interpreter inside an externally-driven event loop
// where no [Executor] is available at all — the supplemented stepping
// boundary named in SPEC_FULL.md, adapted from kont's Step/StepExpr.
// Returns (value, nil, nil) if e completed without ever performing a
// capability, or (zero, suspension, nil) if it is paused.
func Step[A any](rt *Runtime, ec *ExecutionContext, e Effect[A]) (A, *Suspension[A], error) {
	v, err, op, stack, suspended := runLoop(rt, ec, nil, e.n, false, nil, false, nil, true)
	if suspended {
		return zeroOf[A](), &Suspension[A]{rt: rt, ec: ec, stack: stack, op: op}, nil
	}
	if err != nil {
		return zeroOf[A](), nil, err
	}
	return v.(A), nil, nil
}
