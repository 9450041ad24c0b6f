// Package sandbox runs untrusted functions on their own goroutine under a deadline.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

var ErrTimeout = errors.New("call timed out")

// PanicError carries a value recovered from a panicking call.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

type result[T any] struct {
	value T
	err   error
}

// Call runs fn and waits at most timeout for it to return. On expiry Call returns ErrTimeout
// straight away and the goroutine running fn is left behind; its result is dropped.
// If the parent context ends first, its error is returned instead.
// A panic in fn is returned as a *PanicError.
func Call[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan result[T], 1)
	go func() {
		var r result[T]
		defer func() {
			if v := recover(); v != nil {
				r = result[T]{err: &PanicError{Value: v, Stack: debug.Stack()}}
			}
			done <- r
		}()
		r.value, r.err = fn(callCtx)
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-callCtx.Done():
		var zero T
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, ErrTimeout
	}
}

// Run is Call for functions that only return an error.
func Run(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	_, err := Call(ctx, timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
