// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "context"

// ExecutionContext threads cancellation and capability-handler resolution
// down an effect tree. It forms a tree of its own, rooted at whichever
// context a [Runtime] entry point was called with; cancellation only ever
// propagates downward, from a context to its descendants, mirroring
// context.Context's own contract — grounded on go-sup's Context alias
// (github.com/warpfork/go-sup, context.go), generalized here from a plain
// alias into a small wrapper that also carries handler resolution.
type ExecutionContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	handler CapabilityHandler
	parent  *ExecutionContext
}

func newExecutionContext(ctx context.Context, cancel context.CancelFunc, handler CapabilityHandler, parent *ExecutionContext) *ExecutionContext {
	return &ExecutionContext{ctx: ctx, cancel: cancel, handler: handler, parent: parent}
}

// RootContext creates a fresh root ExecutionContext with no installed
// handler and no parent, derived from context.Background().
func RootContext() *ExecutionContext {
	ctx, cancel := context.WithCancel(context.Background())
	return newExecutionContext(ctx, cancel, nil, nil)
}

// FromContext creates a root ExecutionContext derived from an
// externally-supplied context.Context, so cancellation of the caller's
// context propagates into the effect tree.
func FromContext(parent context.Context) *ExecutionContext {
	ctx, cancel := context.WithCancel(parent)
	return newExecutionContext(ctx, cancel, nil, nil)
}

// Child derives a new ExecutionContext whose cancellation is independent
// but whose parent's cancellation still propagates downward into it.
func (ec *ExecutionContext) Child() *ExecutionContext {
	ctx, cancel := context.WithCancel(ec.ctx)
	return newExecutionContext(ctx, cancel, nil, ec)
}

// WithHandler derives a child ExecutionContext with h installed as the
// capability handler for its subtree, shadowing any handler installed
// higher in the tree.
func (ec *ExecutionContext) WithHandler(h CapabilityHandler) *ExecutionContext {
	ctx, cancel := context.WithCancel(ec.ctx)
	return newExecutionContext(ctx, cancel, h, ec)
}

// withDerivedContext builds a child ExecutionContext around an
// externally-derived context.Context (e.g. one produced by
// errgroup.WithContext), inheriting the resolved handler.
func (ec *ExecutionContext) withDerivedContext(ctx context.Context, cancel context.CancelFunc) *ExecutionContext {
	return newExecutionContext(ctx, cancel, ec.handler, ec)
}

// Cancel cancels ec and, transitively, every descendant ExecutionContext
// derived from it. Idempotent.
func (ec *ExecutionContext) Cancel() { ec.cancel() }

// IsCancelled reports whether ec, or an ancestor, has been cancelled.
func (ec *ExecutionContext) IsCancelled() bool {
	select {
	case <-ec.ctx.Done():
		return true
	default:
		return false
	}
}

// ResolveHandler walks up the ExecutionContext tree from ec, returning the
// nearest installed CapabilityHandler, or nil if none is installed
// anywhere in the ancestry.
func (ec *ExecutionContext) ResolveHandler() CapabilityHandler {
	for c := ec; c != nil; c = c.parent {
		if c.handler != nil {
			return c.handler
		}
	}
	return nil
}

// Context returns the underlying context.Context, for interoperating with
// ordinary Go APIs that block on ctx.Done().
func (ec *ExecutionContext) Context() context.Context { return ec.ctx }
