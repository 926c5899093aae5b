package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by the cache backends.
var (
	// ErrNotFound reports that a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork reports a backend connectivity failure, such as a Redis
	// timeout or a refused connection.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss reports that a key was absent from the cache.
	ErrCacheMiss = errors.New("cache miss")
)

const (
	retryAttempts  = 3
	retryBaseDelay = time.Second
)

// RetryableError marks an error as transient. Only marked errors cause
// [RetryWithBackoff] to try again; everything else fails fast.
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

// RetryWithBackoff runs fn, retrying transient failures with doubling
// delays (1s, 2s) up to three attempts in total. Errors not marked via
// [Retryable] are returned immediately. Cancelling ctx aborts the wait
// between attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var lastErr error
	delay := retryBaseDelay

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err
		if attempt == retryAttempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
