// Package govern wraps external calls with a timeout and cooperative
// cancellation. It owns no loop state and is safe for concurrent use.
package govern

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimedOut means the timer won the race against the wrapped call.
	ErrTimedOut = errors.New("call timed out")
	// ErrCancelled means the caller's context was cancelled while waiting.
	ErrCancelled = errors.New("call cancelled")
)

// CallError wraps a failure returned by the wrapped call itself, as opposed
// to a timeout or cancellation imposed from outside.
type CallError struct {
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("call failed: %v", e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

type result[T any] struct {
	val T
	err error
}

// Invoke runs fn in its own goroutine and waits for its result, the timeout,
// or cancellation of ctx, whichever comes first. fn receives a context that
// carries the deadline so cooperative callees can stop early, but many
// external APIs are not cancellable: a call that loses the race may still
// complete in the background, and its result is discarded. A non-positive
// timeout waits on ctx alone.
func Invoke[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, ErrCancelled
	}

	callCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	// Buffered so the losing goroutine's send never blocks; the abandoned
	// result is collected with the channel.
	ch := make(chan result[T], 1)
	go func() {
		val, err := fn(callCtx)
		ch <- result[T]{val: val, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			// A cooperative callee that stops by returning its context error
			// is reporting the governor's own decision, not a failure of its
			// own, so fold it into the matching sentinel.
			switch {
			case errors.Is(r.err, context.Canceled) && ctx.Err() != nil:
				return zero, ErrCancelled
			case errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() == nil:
				return zero, ErrTimedOut
			}
			return zero, &CallError{Err: r.err}
		}
		return r.val, nil
	case <-callCtx.Done():
		if ctx.Err() != nil {
			return zero, ErrCancelled
		}
		return zero, ErrTimedOut
	}
}
