// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"context"
	"testing"
	"time"
)

func TestFiberStatusTransitions(t *testing.T) {
	rt := New(WithScopeDrainTimeout(time.Second))
	root := RootContext()
	f := ExecuteFork(rt, root, Succeed(3))
	v, err := f.Join(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 3 {
		t.Fatalf("got %d, want 3", v)
	}
	if f.Status() != FiberCompleted {
		t.Fatalf("got status %v, want FiberCompleted", f.Status())
	}
}

func TestFiberJoinRespectsCallerContext(t *testing.T) {
	rt := New(WithScopeDrainTimeout(time.Second))
	root := RootContext()
	f := ExecuteFork(rt, root, Suspend(func() (int, error) {
		time.Sleep(200 * time.Millisecond)
		return 1, nil
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Join(ctx)
	if err == nil {
		t.Fatal("expected Join to time out before the fiber settles")
	}
}

// TestBareForkRunsOutsideAnyScope exercises the unscoped [Fork] algebra
// node — matching the Java original's bare Effect.fork() (Effect.java:
// 87-88) — as opposed to [ForkIn], which requires an [EffectScope].
func TestBareForkRunsOutsideAnyScope(t *testing.T) {
	rt := New(WithScopeDrainTimeout(time.Second))
	e := FlatMap(Fork(Succeed(7)), func(f *Fiber[int]) Effect[int] {
		return f.JoinEffect()
	})
	v, err := Run(rt, e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 {
		t.Fatalf("got %d, want 7", v)
	}
}

// TestJoinEffectComposesIntoEffectTree exercises spec.md §3/§4.F's
// join()/interrupt() as lazy effects: JoinEffect/InterruptEffect must
// return composable Effect values, not require the caller to hand-wrap
// eager Join/Interrupt calls in Suspend.
func TestJoinEffectComposesIntoEffectTree(t *testing.T) {
	rt := New(WithScopeDrainTimeout(time.Second))
	e := FlatMap(Fork(Succeed(11)), func(f *Fiber[int]) Effect[int] {
		return Then(f.JoinEffect(), Then(f.InterruptEffect(), f.JoinEffect()))
	})
	v, err := Run(rt, e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 11 {
		t.Fatalf("got %d, want 11 (fiber already completed before InterruptEffect ran)", v)
	}
}

func TestFiberIDsAreDistinct(t *testing.T) {
	rt := New(WithScopeDrainTimeout(time.Second))
	root := RootContext()
	a := ExecuteFork(rt, root, Succeed(1))
	b := ExecuteFork(rt, root, Succeed(2))
	a.awaitBlocking()
	b.awaitBlocking()
	if a.ID() == b.ID() {
		t.Fatal("distinct fibers must have distinct ids")
	}
}
