// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// capturingHandler is a minimal slog.Handler that records every message
// emitted, for asserting the runtime actually wires diagnostics into the
// paths it claims to (missing handler, recovered panic, drained scope) —
// not the exercised-only-by-its-own-test decoration a `warn` call with no
// production call site would be.
type capturingHandler struct {
	mu   sync.Mutex
	msgs []string
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, r.Message)
	return nil
}

func (h *capturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *capturingHandler) WithGroup(string) slog.Handler      { return h }

func (h *capturingHandler) contains(sub string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range h.msgs {
		if m == sub {
			return true
		}
	}
	return false
}

func TestDiagnosticsWarnsOnMissingCapabilityHandler(t *testing.T) {
	rec := &capturingHandler{}
	rt := New(WithLogger(slog.New(rec)))
	_, err := Run(rt, From[getCounter, int](getCounter{}))
	if err == nil {
		t.Fatal("expected an error dispatching to a nonexistent handler")
	}
	if !rec.contains("no capability handler installed") {
		t.Fatal("expected a diagnostic warning for the missing capability handler")
	}
}

func TestDiagnosticsWarnsOnRecoveredSuspendPanic(t *testing.T) {
	rec := &capturingHandler{}
	rt := New(WithLogger(slog.New(rec)))
	e := Suspend(func() (int, error) { panic("boom") })
	_, err := Run(rt, e)
	if err == nil {
		t.Fatal("expected the panic to surface as a HostRuntimeError")
	}
	if !rec.contains("recovered panic from Suspend thunk") {
		t.Fatal("expected a diagnostic warning for the recovered panic")
	}
}

func TestDiagnosticsWarnsOnScopeDrainTimeout(t *testing.T) {
	rec := &capturingHandler{}
	rt := New(WithLogger(slog.New(rec)), WithScopeDrainTimeout(20*time.Millisecond))
	started := make(chan struct{})
	e := Scoped(func(s *EffectScope) Effect[int] {
		return Then(ForkIn(s, Suspend(func() (int, error) {
			close(started)
			<-s.ec.Context().Done()
			time.Sleep(200 * time.Millisecond)
			return 0, ErrCancelled
		})), Suspend(func() (int, error) {
			<-started
			return 1, nil
		}))
	})
	_, err := Run(rt, e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.contains("fiber still running past scope drain timeout") {
		t.Fatal("expected a diagnostic warning when a fiber outlives the drain timeout")
	}
}
