package dispatch

import (
	"context"
	"runtime/debug"
	"time"
)

// Handler processes an event.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// PanicHandler is called when a handler panics.
type PanicHandler func(event any, panicValue any, stack []byte)

// Result describes one handler execution.
type Result struct {
	Success    bool
	Error      error
	Skipped    bool
	Panicked   bool
	PanicValue any
	PanicStack []byte
	Duration   time.Duration
}

// Executor runs handlers with panic recovery and timing.
type Executor struct {
	panicHandler PanicHandler
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPanicHandler sets the function called after a handler panic is recovered.
func WithPanicHandler(h PanicHandler) ExecutorOption {
	return func(e *Executor) {
		e.panicHandler = h
	}
}

// NewExecutor creates an executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs handler with event. A cancelled context skips the handler.
func (e *Executor) Execute(ctx context.Context, event any, handler Handler) (result Result) {
	if err := ctx.Err(); err != nil {
		return Result{Error: err, Skipped: true}
	}

	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)

		if r := recover(); r != nil {
			stack := debug.Stack()
			result.Success = false
			result.Panicked = true
			result.PanicValue = r
			result.PanicStack = stack

			if e.panicHandler != nil {
				func() {
					defer func() { _ = recover() }()
					e.panicHandler(event, r, stack)
				}()
			}
		}
	}()

	if err := handler.Handle(ctx, event); err != nil {
		result.Error = err
		return result
	}
	result.Success = true
	return result
}
