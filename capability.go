// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"errors"
	"reflect"
)

// Capability is the F-bounded interface for capability requests, mirroring
// kont's Op[O, A] (hayabusa-cloud-kont, effect.go): the self-referencing
// constraint gives the compiler knowledge of both the concrete request
// type and its result type.
//
// Example:
//
//	type ReadFile struct{ effect.Phantom[[]byte]; Path string }
type Capability[C any, R any] interface {
	CapResult() R
}

// Phantom is an embeddable zero-size type providing the [Capability]
// result marker, so concrete request types need not write their own
// CapResult method.
type Phantom[R any] struct{}

// CapResult implements the phantom result marker for [Capability].
func (Phantom[R]) CapResult() R { panic("phantom") }

// CapabilityHandler interprets capability requests performed by [From] and
// [Generate]'s GeneratorContext. Dispatch returns [ErrCapabilityRejected]
// (wrapped, checkable with errors.Is) when it does not recognize op — a
// distinct outcome from recognizing op and legitimately failing it.
type CapabilityHandler interface {
	Dispatch(op any) (any, error)
}

// HandlerFunc adapts a plain function to a CapabilityHandler.
type HandlerFunc func(op any) (any, error)

// Dispatch calls f.
func (f HandlerFunc) Dispatch(op any) (any, error) { return f(op) }

// OrElse returns a handler that tries first, falling back to second only
// when first rejects the operation (errors.Is(err, ErrCapabilityRejected)).
// A legitimate failure from first is not a rejection and is not retried.
func OrElse(first, second CapabilityHandler) CapabilityHandler {
	return HandlerFunc(func(op any) (any, error) {
		v, err := first.Dispatch(op)
		if err != nil && errors.Is(err, ErrCapabilityRejected) {
			return second.Dispatch(op)
		}
		return v, err
	})
}

// Compose chains handlers left to right with [OrElse], the last handler in
// the chain being consulted only after every earlier one has rejected.
func Compose(handlers ...CapabilityHandler) CapabilityHandler {
	if len(handlers) == 0 {
		return RejectAll
	}
	h := handlers[len(handlers)-1]
	for i := len(handlers) - 2; i >= 0; i-- {
		h = OrElse(handlers[i], h)
	}
	return h
}

// RegistryHandler dispatches by the concrete Go type of the incoming
// capability against a registered map, the Go rendering of the Java
// original's CompositeCapabilityHandler
// (original_source/roux/capability/CompositeCapabilityHandler.java): a
// handler that looks the capability's class up in a
// map[Class<?>, CapabilityHandler<?>] instead of a hand-chained OrElse
// pair. Where the Java original resolves the *declared capability
// interface* a concrete request class implements (walking getInterfaces()/
// getSuperclass() to find it), RegistryHandler keys directly on the
// concrete reflect.Type of op, since Go capability requests are ordinary
// structs with no separate marker interface to recover.
type RegistryHandler struct {
	handlers map[reflect.Type]CapabilityHandler
}

// NewRegistryHandler builds an empty RegistryHandler ready for Register.
func NewRegistryHandler() *RegistryHandler {
	return &RegistryHandler{handlers: make(map[reflect.Type]CapabilityHandler)}
}

// Register installs handler as the dispatch target for every capability
// value whose concrete type matches a zero value of C.
func Register[C Capability[C, R], R any](rh *RegistryHandler, handler CapabilityHandler) {
	var zero C
	rh.handlers[reflect.TypeOf(zero)] = handler
}

// Dispatch looks op's concrete type up in the registry, rejecting with
// [ErrCapabilityRejected] when no handler was registered for it — the
// rendering of the Java original throwing UnsupportedOperationException
// from its unmatched case.
func (rh *RegistryHandler) Dispatch(op any) (any, error) {
	h, ok := rh.handlers[reflect.TypeOf(op)]
	if !ok {
		return nil, ErrCapabilityRejected
	}
	return h.Dispatch(op)
}
