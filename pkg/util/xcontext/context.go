package xcontext

import (
	"context"
	"fmt"
	"strings"
)

// NonBlockingCheck checks context as non-blocking select and returns error if context is done.
func NonBlockingCheck(ctx context.Context, msgs ...string) error {
	select {
	case <-ctx.Done():
		if len(msgs) == 0 {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", strings.Join(msgs, ":"), ctx.Err())
	default:
	}
	return nil
}

type valueKey[T any] struct{}

// WithValue returns a child context carrying value, keyed by its type T.
func WithValue[T any](ctx context.Context, value T) context.Context {
	return context.WithValue(ctx, valueKey[T]{}, value)
}

// GetValue returns the value of type T stored by WithValue and whether one was found.
func GetValue[T any](ctx context.Context) (T, bool) {
	value, ok := ctx.Value(valueKey[T]{}).(T)
	return value, ok
}
