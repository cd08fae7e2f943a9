package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by [GetJSON] when the key is absent. The raw
// [Cache.Get] reports misses through its hit flag instead.
var ErrCacheMiss = errors.New("cache miss")

// RetryableError wraps an error to indicate it should trigger a retry.
// Backends and stores wrap transient failures (connection drops, server
// timeouts) so callers can distinguish them from permanent ones.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in
// its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to three times, doubling the delay between
// attempts starting from one second. Errors not marked Retryable abort
// immediately, as does ctx cancellation while waiting.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const maxAttempts = 3

	delay := time.Second
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) || attempt == maxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
