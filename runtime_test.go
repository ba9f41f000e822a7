// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunAsyncAwait(t *testing.T) {
	rt := New()
	h := RunAsync(rt, Suspend(func() (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	}), nil, nil)
	v, err := h.Await(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
}

func TestRunAsyncCancel(t *testing.T) {
	rt := New()
	started := make(chan struct{})
	h := RunAsync(rt, Suspend(func() (int, error) {
		close(started)
		time.Sleep(500 * time.Millisecond)
		return 1, nil
	}), nil, nil)
	<-started
	h.Cancel()
	_, err := h.Await(context.Background())
	if err == nil {
		t.Fatal("expected cancellation to surface as an error")
	}
	if !h.IsCancelled() {
		t.Fatal("expected IsCancelled to report true after Cancel")
	}
}

// TestRunAsyncSuppressesCallbackOnCancel exercises spec.md's S8 scenario:
// on-success callback must never fire when the handle was cancelled before
// the computation observed cancellation and settled, even though Await
// still resolves.
func TestRunAsyncSuppressesCallbackOnCancel(t *testing.T) {
	rt := New()
	started := make(chan struct{})
	var onOkCalled, onErrCalled atomic.Bool
	h := RunAsync(rt, Suspend(func() (int, error) {
		close(started)
		time.Sleep(500 * time.Millisecond)
		return 1, nil
	}), func(int) { onOkCalled.Store(true) }, func(error) { onErrCalled.Store(true) })
	<-started
	h.Cancel()
	if !h.IsCancelled() {
		t.Fatal("expected IsCancelled to report true after Cancel")
	}
	_, err := h.Await(context.Background())
	if err == nil {
		t.Fatal("expected cancellation to surface as an error")
	}
	if onOkCalled.Load() {
		t.Fatal("on-success callback fired despite cancellation")
	}
	if onErrCalled.Load() {
		t.Fatal("on-error callback fired despite cancellation; cancellation must suppress both callbacks")
	}
}

// TestRunAsyncInvokesOnOk exercises the ordinary success path: onOk fires
// with the result, onErr never fires.
func TestRunAsyncInvokesOnOk(t *testing.T) {
	rt := New()
	done := make(chan int, 1)
	h := RunAsync(rt, Succeed(7), func(v int) { done <- v }, func(error) { t.Fatal("onErr fired on success") })
	select {
	case v := <-done:
		if v != 7 {
			t.Fatalf("got %d, want 7", v)
		}
	case <-time.After(time.Second):
		t.Fatal("onOk was never invoked")
	}
	if _, err := h.Await(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestRunAsyncInvokesOnErr exercises the ordinary failure path: onErr
// fires with the terminal error, onOk never fires.
func TestRunAsyncInvokesOnErr(t *testing.T) {
	rt := New()
	sentinel := errors.New("boom")
	done := make(chan error, 1)
	h := RunAsync(rt, Fail[int](sentinel), func(int) { t.Fatal("onOk fired on failure") }, func(err error) { done <- err })
	select {
	case err := <-done:
		if !errors.Is(err, sentinel) {
			t.Fatalf("got %v, want %v", err, sentinel)
		}
	case <-time.After(time.Second):
		t.Fatal("onErr was never invoked")
	}
	if _, err := h.Await(context.Background()); !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
}

func TestCancellationHandleCancelIsIdempotent(t *testing.T) {
	rt := New()
	h := RunAsync(rt, Suspend(func() (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 1, nil
	}), nil, nil)
	h.Cancel()
	h.Cancel()
}

func TestAwaitTimeoutReportsPending(t *testing.T) {
	rt := New()
	h := RunAsync(rt, Suspend(func() (int, error) {
		time.Sleep(200 * time.Millisecond)
		return 1, nil
	}), nil, nil)
	_, _, done := h.AwaitTimeout(5 * time.Millisecond)
	if done {
		t.Fatal("expected the computation to still be pending")
	}
}

func TestWithLoggerNilSilencesDiagnostics(t *testing.T) {
	rt := New(WithLogger(nil))
	rt.warn("should not panic")
}
