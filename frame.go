// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// contFrame is a defunctionalized continuation frame pushed onto the
// trampoline's explicit LIFO frame stack. Dispatch is by type switch —
// contFrame is a pure marker interface, matching spec.md §4.B's three
// frame kinds exactly.
type contFrame interface {
	frame()
}

// seqCont is pushed for FlatMap: on a successful resume it applies k to
// the value and continues evaluating the resulting node. It is inert
// during error unwinding — FlatMap never observes a failure.
type seqCont struct {
	k func(Erased) effectNode
}

func (*seqCont) frame() {}

// foldCont is pushed for Fold: it is the only frame kind consulted during
// both the success path and the error-unwinding path, since Fold observes
// both outcomes of its base. Structural cancellation skips foldCont like
// every other frame — see trampoline.go.
type foldCont struct {
	onSuccess func(Erased) effectNode
	onFailure func(error) effectNode
}

func (*foldCont) frame() {}

// mapErrorCont is pushed for MapError: during error unwinding it rewrites
// the error in place and keeps unwinding; on the success path it is inert.
type mapErrorCont struct {
	f func(error) error
}

func (*mapErrorCont) frame() {}
