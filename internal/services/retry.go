package services

import (
	"context"
	"time"

	apperrors "task-market.com/task-market/internal/errors"
)

const retryAttempts = 3

// retryTransient reruns fn on TransientIO failures with doubling
// backoff, bounded so a persistent outage surfaces instead of being
// masked. Only reads go through here; mutators are never auto-retried.
func retryTransient[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	backoff := 50 * time.Millisecond

	for attempt := 1; ; attempt++ {
		v, err := fn()
		if err == nil || !apperrors.Retryable(err) || attempt == retryAttempts {
			return v, err
		}

		select {
		case <-ctx.Done():
			return zero, apperrors.TransientIO(ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}
