// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// runLoop is the trampoline: the single iterative evaluator for effectNode
// trees. It never recurses through native Go calls to walk a chain of
// FlatMap/Fold/MapError — every descent replaces a would-be call with a
// reassignment of `current` plus a push onto the explicit LIFO frame stack.
//
// When stepMode is true, evaluation stops the instant it is about to
// dispatch a nodePerform, returning the pending operation and the frame
// stack instead of resolving it — this is the primitive [Step] builds on.
// Callers resume by re-entering runLoop with resuming=true and the
// returned stack.
func runLoop(rt *Runtime, ec *ExecutionContext, stack []contFrame, current effectNode, resuming bool, val Erased, hasErr bool, errv error, stepMode bool) (rv Erased, rerr error, pendingOp any, pendingStack []contFrame, suspended bool) {
	for {
		if ec.IsCancelled() {
			for len(stack) > 0 {
				n := len(stack)
				top := stack[n-1]
				stack = stack[:n-1]
				switch fr := top.(type) {
				case *seqCont:
					releaseSeqCont(fr)
				case *foldCont:
					releaseFoldCont(fr)
				case *mapErrorCont:
					releaseMapErrorCont(fr)
				}
			}
			return nil, ErrCancelled, nil, nil, false
		}

		if !resuming {
			switch n := current.(type) {
			case nodeSucceed:
				val, hasErr, resuming = n.value, false, true
			case nodeFail:
				errv, hasErr, resuming = n.err, true, true
			case nodeSuspend:
				v, err := safeCall(rt, n.thunk)
				if err != nil {
					errv, hasErr, resuming = err, true, true
				} else {
					val, hasErr, resuming = v, false, true
				}
			case nodeFlatMap:
				stack = append(stack, acquireSeqCont(n.k))
				current = n.base
			case nodeFold:
				stack = append(stack, acquireFoldCont(n.onSuccess, n.onFailure))
				current = n.base
			case nodeMapError:
				stack = append(stack, acquireMapErrorCont(n.f))
				current = n.base
			case nodeFork:
				val, hasErr, resuming = n.spawn(rt, ec), false, true
			case nodeScoped:
				v, err := safeCallScoped(n.run, rt, ec)
				if err != nil {
					errv, hasErr, resuming = err, true, true
				} else {
					val, hasErr, resuming = v, false, true
				}
			case nodeGenerate:
				v, err := runGenerate(rt, ec, n)
				if err != nil {
					errv, hasErr, resuming = err, true, true
				} else {
					val, hasErr, resuming = v, false, true
				}
			case nodePerform:
				if stepMode {
					return nil, nil, n.op, stack, true
				}
				v, err := performCapability(rt, ec, n.op)
				if err != nil {
					errv, hasErr, resuming = err, true, true
				} else {
					val, hasErr, resuming = v, false, true
				}
			default:
				panic("effect: unknown node type")
			}
			continue
		}

		if len(stack) == 0 {
			if hasErr {
				return nil, errv, nil, nil, false
			}
			return val, nil, nil, nil, false
		}

		n := len(stack)
		top := stack[n-1]
		stack = stack[:n-1]
		switch fr := top.(type) {
		case *seqCont:
			if !hasErr {
				current = fr.k(val)
				resuming = false
			}
			releaseSeqCont(fr)
		case *mapErrorCont:
			if hasErr && !errors.Is(errv, ErrCancelled) {
				errv = fr.f(errv)
			}
			releaseMapErrorCont(fr)
		case *foldCont:
			if hasErr && errors.Is(errv, ErrCancelled) {
				releaseFoldCont(fr)
				continue
			}
			if hasErr {
				current = fr.onFailure(errv)
			} else {
				current = fr.onSuccess(val)
			}
			hasErr = false
			resuming = false
			releaseFoldCont(fr)
		}
	}
}

// evalEffect runs node to completion under ec, dispatching capabilities
// through ec's resolved handler.
func evalEffect(rt *Runtime, ec *ExecutionContext, node effectNode) (Erased, error) {
	v, err, _, _, _ := runLoop(rt, ec, nil, node, false, nil, false, nil, false)
	return v, err
}

// safeEvalEffect is evalEffect with panic recovery, for use at the top of
// a goroutine the runtime itself launched (Fork, ExecuteFork, RunAsync) —
// there is no caller frame above these to recover on their behalf, unlike
// a Suspend thunk evaluated inline in the trampoline's own goroutine.
func safeEvalEffect(rt *Runtime, ec *ExecutionContext, node effectNode) (v Erased, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HostRuntimeError{Recovered: r, Stack: debug.Stack()}
		}
	}()
	return evalEffect(rt, ec, node)
}

// safeCall recovers a panicking Suspend thunk into a [HostRuntimeError].
func safeCall(rt *Runtime, thunk func() (Erased, error)) (v Erased, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HostRuntimeError{Recovered: r, Stack: debug.Stack()}
			rt.warn("recovered panic from Suspend thunk", "recovered", r)
		}
	}()
	return thunk()
}

func safeCallScoped(run func(*Runtime, *ExecutionContext) (Erased, error), rt *Runtime, ec *ExecutionContext) (v Erased, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HostRuntimeError{Recovered: r, Stack: debug.Stack()}
			rt.warn("recovered panic from Scoped body", "recovered", r)
		}
	}()
	return run(rt, ec)
}

// performCapability resolves the nearest installed CapabilityHandler and
// dispatches op to it.
func performCapability(rt *Runtime, ec *ExecutionContext, op any) (Erased, error) {
	h := ec.ResolveHandler()
	if h == nil {
		rt.warn("no capability handler installed", "capability", fmt.Sprintf("%T", op))
		return nil, fmt.Errorf("effect: no capability handler installed for %T: %w", op, ErrCapabilityRejected)
	}
	return h.Dispatch(op)
}

func runGenerate(rt *Runtime, ec *ExecutionContext, n nodeGenerate) (v Erased, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HostRuntimeError{Recovered: r, Stack: debug.Stack()}
			rt.warn("recovered panic from Generate body", "recovered", r)
		}
	}()
	gc := newGeneratorContext(rt, ec.WithHandler(n.handler))
	return n.run(gc)
}
