// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// GeneratorContext is the handle an imperative generator function passed
// to [Generate] receives. Unlike host languages without a real call
// stack, a Go generator function needs no CPS encoding to suspend and
// resume — it simply blocks on ordinary Go calls, and the goroutine
// running it is the continuation. GeneratorContext exists to give that
// function structured access to the surrounding runtime instead of
// letting it reach for globals, mirroring the five operations of the
// Java original's GeneratorContext interface (original_source/roux/
// GeneratorContext.java): perform, lift, call, yield, handler.
type GeneratorContext struct {
	rt *Runtime
	ec *ExecutionContext
}

func newGeneratorContext(rt *Runtime, ec *ExecutionContext) *GeneratorContext {
	return &GeneratorContext{rt: rt, ec: ec}
}

// Perform interprets a capability request immediately through gc's
// resolved handler. Matches GeneratorContext.perform.
func Perform[C Capability[C, R], R any](gc *GeneratorContext, op C) (R, error) {
	v, err := performCapability(gc.rt, gc.ec, op)
	if err != nil {
		var zero R
		return zero, err
	}
	return v.(R), nil
}

// Lift builds an unevaluated Effect from a capability request without
// dispatching it — the generator-context counterpart of [From]. Matches
// the Java original's default GeneratorContext.lift, which just returns
// Effect.from(capability) instead of running it.
func Lift[C Capability[C, R], R any](gc *GeneratorContext, op C) Effect[R] {
	return From[C, R](op)
}

// Call runs a raw side-effecting thunk directly under the generator's
// error discipline, without wrapping it in an Effect node first. Matches
// GeneratorContextImpl.call, which just invokes the supplied
// ThrowingSupplier and propagates whatever it returns.
func Call[A any](gc *GeneratorContext, thunk func() (A, error)) (A, error) {
	return thunk()
}

// Yield evaluates e to completion right now, under gc's ExecutionContext,
// so the sub-effect shares the generator's cancellation and installed
// handler — the generator-context counterpart of eager re-entry into the
// trampoline. Matches GeneratorContextImpl.yield, which re-enters the
// runtime via unsafeRunWithHandler.
func Yield[A any](gc *GeneratorContext, e Effect[A]) (A, error) {
	v, err := evalEffect(gc.rt, gc.ec, e.n)
	if err != nil {
		var zero A
		return zero, err
	}
	return v.(A), nil
}

// Handler returns the CapabilityHandler installed for gc, for generator
// code that wants to compose or delegate to it explicitly rather than go
// through Perform. Matches GeneratorContext.handler().
func (gc *GeneratorContext) Handler() CapabilityHandler {
	return gc.ec.ResolveHandler()
}

// WithHandler runs f with h installed as the capability handler for its
// duration, shadowing whatever handler gc otherwise resolves to. This is
// the generator-context counterpart of ExecutionContext.WithHandler used
// by [RunWithHandler] and [Generate].
func WithHandler[A any](gc *GeneratorContext, h CapabilityHandler, f func(*GeneratorContext) (A, error)) (A, error) {
	child := &GeneratorContext{rt: gc.rt, ec: gc.ec.WithHandler(h)}
	return f(child)
}

// IsCancelled reports whether the generator's ExecutionContext has been
// cancelled. Long-running generator loops should check this and return
// ErrCancelled promptly, since a generator function runs as ordinary Go
// code the trampoline cannot preempt from outside.
func (gc *GeneratorContext) IsCancelled() bool { return gc.ec.IsCancelled() }
