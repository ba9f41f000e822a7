// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "errors"

// Erased represents a type-erased value carried through the effect tree
// and the trampoline's frame stack. Concrete types are recovered via type
// assertions at node and frame boundaries — the same discipline the
// iterative evaluator in trampoline.go depends on throughout.
type Erased = any

// effectNode is the tagged-sum representation of an Effect description.
// Dispatch is by type switch in the trampoline, not by an explicit tag
// field — effectNode is a pure marker interface.
type effectNode interface {
	node()
}

// nodeSucceed lifts an already-known value.
type nodeSucceed struct{ value Erased }

func (nodeSucceed) node() {}

// nodeFail lifts an already-known error.
type nodeFail struct{ err error }

func (nodeFail) node() {}

// nodeSuspend captures a side-effecting thunk, evaluated exactly once
// when the trampoline reaches it.
type nodeSuspend struct{ thunk func() (Erased, error) }

func (nodeSuspend) node() {}

// nodeFlatMap sequences base with a continuation that produces the next node.
type nodeFlatMap struct {
	base effectNode
	k    func(Erased) effectNode
}

func (nodeFlatMap) node() {}

// nodeFold observes both outcomes of base, mapping either into a new node.
type nodeFold struct {
	base      effectNode
	onSuccess func(Erased) effectNode
	onFailure func(error) effectNode
}

func (nodeFold) node() {}

// nodeMapError transforms a failure without observing success.
type nodeMapError struct {
	base effectNode
	f    func(error) error
}

func (nodeMapError) node() {}

// nodeFork starts an effect concurrently, producing a type-correct Fiber
// handle. The type parameter of the originating Fork[A] call is closed
// over inside spawn, since the node tree itself is type-erased.
type nodeFork struct {
	spawn func(rt *Runtime, ec *ExecutionContext) Erased
}

func (nodeFork) node() {}

// nodeScoped opens a child EffectScope, runs the bound body under it, and
// applies the scope-exit protocol before continuing.
type nodeScoped struct {
	run func(rt *Runtime, ec *ExecutionContext) (Erased, error)
}

func (nodeScoped) node() {}

// nodeGenerate runs an imperative generator function with a handler
// installed on its GeneratorContext. The handler travels with the node
// itself rather than being resolved from the ambient ExecutionContext, so
// a Generate effect remains a self-contained, portable description —
// matching original_source/roux/Effect.java's generate(generator, handler)
// record, whose handler field DefaultEffectRuntime.executeGenerate reads
// directly rather than consulting ctx's installed handler.
type nodeGenerate struct {
	run     func(*GeneratorContext) (Erased, error)
	handler CapabilityHandler
}

func (nodeGenerate) node() {}

// nodePerform requests interpretation of a capability by the ambient
// CapabilityHandler chain.
type nodePerform struct {
	op any
}

func (nodePerform) node() {}

// Effect describes a computation that produces a value of type A or fails
// with an error. Nothing runs until the Effect is handed to a [Runtime] —
// every constructor and combinator below only builds a description.
type Effect[A any] struct {
	n effectNode
}

func wrap[A any](n effectNode) Effect[A] { return Effect[A]{n: n} }

// Succeed lifts an already-known value into an Effect that never fails.
func Succeed[A any](a A) Effect[A] { return wrap[A](nodeSucceed{value: a}) }

// Fail lifts an already-known error into an Effect that never succeeds.
func Fail[A any](err error) Effect[A] { return wrap[A](nodeFail{err: err}) }

// Suspend captures a side-effecting thunk. The thunk runs exactly once,
// when the trampoline evaluates this node, never at construction time.
func Suspend[A any](f func() (A, error)) Effect[A] {
	return wrap[A](nodeSuspend{thunk: func() (Erased, error) { return f() }})
}

// From lifts a capability request into an Effect. The request is
// interpreted by whichever CapabilityHandler is installed on the
// ExecutionContext at evaluation time.
func From[C Capability[C, R], R any](op C) Effect[R] {
	return wrap[R](nodePerform{op: op})
}

// FlatMap sequences e, feeding its result to f to obtain the next Effect.
func FlatMap[A, B any](e Effect[A], f func(A) Effect[B]) Effect[B] {
	return wrap[B](nodeFlatMap{
		base: e.n,
		k: func(v Erased) effectNode {
			return f(v.(A)).n
		},
	})
}

// Map transforms the success value of e with a pure function.
func Map[A, B any](e Effect[A], f func(A) B) Effect[B] {
	return FlatMap(e, func(a A) Effect[B] { return Succeed(f(a)) })
}

// Fold observes both the success and failure channel of e, converging on
// a single Effect[B].
func Fold[A, B any](e Effect[A], onSuccess func(A) Effect[B], onFailure func(error) Effect[B]) Effect[B] {
	return wrap[B](nodeFold{
		base: e.n,
		onSuccess: func(v Erased) effectNode {
			return onSuccess(v.(A)).n
		},
		onFailure: func(err error) effectNode {
			return onFailure(err).n
		},
	})
}

// MapError transforms a failure of e without observing success. Structural
// cancellation bypasses MapError entirely — see cancellation handling in
// trampoline.go.
func MapError[A any](e Effect[A], f func(error) error) Effect[A] {
	return wrap[A](nodeMapError{base: e.n, f: f})
}

// CatchAll recovers from any failure of e by switching to the Effect
// produced by f. Structural cancellation bypasses CatchAll.
func CatchAll[A any](e Effect[A], f func(error) Effect[A]) Effect[A] {
	return Fold(e, func(a A) Effect[A] { return Succeed(a) }, f)
}

// OrElse recovers from any failure of e by switching to alt.
func OrElse[A any](e Effect[A], alt Effect[A]) Effect[A] {
	return CatchAll(e, func(error) Effect[A] { return alt })
}

// Attempt reifies the success/failure outcome of e into an [Either],
// turning a failure into an ordinary value instead of propagating it.
func Attempt[A any](e Effect[A]) Effect[Either[error, A]] {
	return Fold(e,
		func(a A) Effect[Either[error, A]] { return Succeed(Right[error, A](a)) },
		func(err error) Effect[Either[error, A]] { return Succeed(Left[error, A](err)) },
	)
}

// Fork starts e running concurrently, outside any [EffectScope], and
// returns immediately with a Fiber handle rooted at whichever
// ExecutionContext is ambient when the node is evaluated. Matches the
// Java original's bare Effect.fork() (original_source/roux/Effect.java:
// 87-88: `record Fork<E,A>(Effect<E,A> effect)`, dispatched by
// DefaultEffectRuntime.execute's Fork case against the ambient ctx, not a
// scope) — a fiber started this way is not tracked by any scope and is
// not cancelled by a Scoped exit.
func Fork[A any](e Effect[A]) Effect[*Fiber[A]] {
	return wrap[*Fiber[A]](nodeFork{
		spawn: func(rt *Runtime, ec *ExecutionContext) Erased {
			return ExecuteFork[A](rt, ec, e)
		},
	})
}

// ForkIn starts e running concurrently under scope and returns immediately
// with a Fiber handle. The fiber does not outlive scope. Matches the Java
// original's Effect.forkIn(scope), which delegates to scope.fork(this)
// (original_source/roux/Effect.java:91-92).
func ForkIn[A any](scope *EffectScope, e Effect[A]) Effect[*Fiber[A]] {
	return wrap[*Fiber[A]](nodeFork{
		spawn: func(rt *Runtime, callerEC *ExecutionContext) Erased {
			return forkInScope[A](rt, scope, e.n)
		},
	})
}

// Scoped opens a fresh child [EffectScope], runs body under it, and applies
// the scope-exit protocol (cancel every outstanding fiber, then drain)
// before continuing. When a forked fiber's failure cancels the body, that
// failure is returned rather than the body's ErrCancelled.
func Scoped[A any](body func(*EffectScope) Effect[A]) Effect[A] {
	return wrap[A](nodeScoped{
		run: func(rt *Runtime, ec *ExecutionContext) (Erased, error) {
			scope := newScope(ec)
			eff := body(scope)
			v, err := evalEffect(rt, scope.ec, eff.n)
			exitErr := scope.exit(rt)
			if err != nil {
				if exitErr != nil && errors.Is(err, ErrCancelled) {
					return nil, exitErr
				}
				return nil, err
			}
			if exitErr != nil {
				return nil, exitErr
			}
			return v, nil
		},
	})
}

// Generate runs an imperative generator function with handler installed
// in a child context and a [GeneratorContext] through which f may perform
// capabilities, lift effects, and evaluate sub-effects with Yield. Matches
// spec.md's generate(generator, handler) and original_source/roux's
// Effect.generate(generator, handler).
func Generate[A any](f func(*GeneratorContext) (A, error), handler CapabilityHandler) Effect[A] {
	return wrap[A](nodeGenerate{
		run:     func(gc *GeneratorContext) (Erased, error) { return f(gc) },
		handler: handler,
	})
}

// Pair is the trivial product type used by [ZipPar] and friends.
type Pair[A, B any] struct {
	First  A
	Second B
}

// ZipPar runs a and b concurrently in the given scope and joins both,
// combining their results into a Pair. See DESIGN.md for the tie-break
// rule applied when both fail.
func ZipPar[A, B any](scope *EffectScope, a Effect[A], b Effect[B]) Effect[Pair[A, B]] {
	return FlatMap(ForkIn(scope, a), func(fa *Fiber[A]) Effect[Pair[A, B]] {
		return FlatMap(ForkIn(scope, b), func(fb *Fiber[B]) Effect[Pair[A, B]] {
			return Suspend(func() (Pair[A, B], error) {
				av, aerr := fa.awaitBlocking()
				bv, berr := fb.awaitBlocking()
				if aerr != nil {
					return Pair[A, B]{}, aerr
				}
				if berr != nil {
					return Pair[A, B]{}, berr
				}
				return Pair[A, B]{First: av, Second: bv}, nil
			})
		})
	})
}

// Triple is the three-way product type used by [Par3].
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Quad is the four-way product type used by [Par4].
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Par2 is an alias for [ZipPar] kept for symmetry with Par3/Par4.
func Par2[A, B any](scope *EffectScope, a Effect[A], b Effect[B]) Effect[Pair[A, B]] {
	return ZipPar(scope, a, b)
}

// Par3 runs three effects concurrently and joins all three.
func Par3[A, B, C any](scope *EffectScope, a Effect[A], b Effect[B], c Effect[C]) Effect[Triple[A, B, C]] {
	return Map(ZipPar(scope, ZipPar(scope, a, b), c), func(p Pair[Pair[A, B], C]) Triple[A, B, C] {
		return Triple[A, B, C]{First: p.First.First, Second: p.First.Second, Third: p.Second}
	})
}

// Par4 runs four effects concurrently and joins all four.
func Par4[A, B, C, D any](scope *EffectScope, a Effect[A], b Effect[B], c Effect[C], d Effect[D]) Effect[Quad[A, B, C, D]] {
	return Map(ZipPar(scope, ZipPar(scope, a, b), ZipPar(scope, c, d)), func(p Pair[Pair[A, B], Pair[C, D]]) Quad[A, B, C, D] {
		return Quad[A, B, C, D]{First: p.First.First, Second: p.First.Second, Third: p.Second.First, Fourth: p.Second.Second}
	})
}
