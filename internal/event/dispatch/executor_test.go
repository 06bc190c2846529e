package dispatch

import (
	"context"
	"errors"
	"testing"
)

type handlerFunc func(ctx context.Context, event any) error

func (f handlerFunc) Handle(ctx context.Context, event any) error { return f(ctx, event) }

func TestExecutor_Success(t *testing.T) {
	e := NewExecutor()
	called := false
	res := e.Execute(context.Background(), "ev", handlerFunc(func(_ context.Context, ev any) error {
		called = ev == "ev"
		return nil
	}))

	if !res.Success || !called {
		t.Errorf("Execute() = %+v, called = %v", res, called)
	}
}

func TestExecutor_Error(t *testing.T) {
	boom := errors.New("boom")
	res := NewExecutor().Execute(context.Background(), nil, handlerFunc(func(context.Context, any) error {
		return boom
	}))

	if res.Success || !errors.Is(res.Error, boom) {
		t.Errorf("Execute() = %+v, want error %v", res, boom)
	}
}

func TestExecutor_Panic(t *testing.T) {
	var recovered any
	e := NewExecutor(WithPanicHandler(func(_ any, v any, stack []byte) {
		recovered = v
		if len(stack) == 0 {
			t.Error("expected stack trace")
		}
	}))

	res := e.Execute(context.Background(), nil, handlerFunc(func(context.Context, any) error {
		panic("bad handler")
	}))

	if !res.Panicked || res.Success {
		t.Errorf("Execute() = %+v, want panicked", res)
	}
	if recovered != "bad handler" {
		t.Errorf("panic handler got %v", recovered)
	}
}

func TestExecutor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewExecutor().Execute(ctx, nil, handlerFunc(func(context.Context, any) error {
		t.Error("handler should not run")
		return nil
	}))
	if !res.Skipped || !errors.Is(res.Error, context.Canceled) {
		t.Errorf("Execute() = %+v, want skipped", res)
	}
}
