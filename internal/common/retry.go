package common

import "context"

const versionRetryAttempts = 3

// RetryOnConflict re-runs fn while it fails with CodeConflict, up to a small
// bound, then surfaces Contention. fn must re-read the record it mutates on
// every attempt so the version guard is evaluated against fresh state.
func RetryOnConflict(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < versionRetryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return NewError(CodeUnavailable, "operation cancelled", err)
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !Is(lastErr, CodeConflict) {
			return lastErr
		}
	}
	return NewError(CodeContention, "record is being modified concurrently, try again", lastErr)
}
