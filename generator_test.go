// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"errors"
	"testing"
)

type readValue struct{ Phantom[int] }

func TestGenerateImperativeStyle(t *testing.T) {
	h := HandlerFunc(func(op any) (any, error) {
		switch op.(type) {
		case readValue:
			return 10, nil
		default:
			return nil, ErrCapabilityRejected
		}
	})
	e := Generate(func(gc *GeneratorContext) (int, error) {
		a, err := Perform[readValue, int](gc, readValue{})
		if err != nil {
			return 0, err
		}
		b, err := Yield(gc, Succeed(5))
		if err != nil {
			return 0, err
		}
		return a + b, nil
	}, h)
	v, err := RunDefault(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 15 {
		t.Fatalf("got %d, want 15", v)
	}
}

func TestGeneratePropagatesYieldFailure(t *testing.T) {
	sentinel := errors.New("boom")
	e := Generate(func(gc *GeneratorContext) (int, error) {
		return Yield(gc, Fail[int](sentinel))
	}, RejectAll)
	_, err := RunDefault(e)
	if !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
}

func TestGenerateLiftBuildsUnevaluatedEffect(t *testing.T) {
	calls := 0
	h := HandlerFunc(func(op any) (any, error) {
		switch op.(type) {
		case readValue:
			calls++
			return 42, nil
		default:
			return nil, ErrCapabilityRejected
		}
	})
	e := Generate(func(gc *GeneratorContext) (int, error) {
		lifted := Lift[readValue, int](gc, readValue{})
		// Building the Effect must not dispatch the capability — only
		// Yield-ing it (or running it via RunDefault) does.
		if calls != 0 {
			t.Fatal("Lift dispatched the capability before it was yielded")
		}
		return Yield(gc, lifted)
	}, h)
	v, err := RunDefault(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
}

func TestGenerateCallRunsRawThunk(t *testing.T) {
	e := Generate(func(gc *GeneratorContext) (int, error) {
		return Call(gc, func() (int, error) { return 7, nil })
	}, RejectAll)
	v, err := RunDefault(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 {
		t.Fatalf("got %d, want 7", v)
	}
}

func TestGenerateCallPropagatesThunkError(t *testing.T) {
	sentinel := errors.New("call failed")
	e := Generate(func(gc *GeneratorContext) (int, error) {
		return Call(gc, func() (int, error) { return 0, sentinel })
	}, RejectAll)
	_, err := RunDefault(e)
	if !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
}

func TestGenerateHandlerAccessor(t *testing.T) {
	h := HandlerFunc(func(op any) (any, error) { return 99, nil })
	e := Generate(func(gc *GeneratorContext) (int, error) {
		v, err := gc.Handler().Dispatch(readValue{})
		if err != nil {
			return 0, err
		}
		return v.(int), nil
	}, h)
	v, err := RunDefault(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 99 {
		t.Fatalf("got %d, want 99", v)
	}
}

func TestGenerateWithHandlerShadowsAmbient(t *testing.T) {
	outer := HandlerFunc(func(op any) (any, error) { return 1, nil })
	inner := HandlerFunc(func(op any) (any, error) { return 2, nil })
	e := Generate(func(gc *GeneratorContext) (int, error) {
		return WithHandler(gc, inner, func(gc *GeneratorContext) (int, error) {
			return Perform[readValue, int](gc, readValue{})
		})
	}, outer)
	v, err := RunDefault(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2 {
		t.Fatalf("got %d, want 2 (inner handler should shadow outer)", v)
	}
}
