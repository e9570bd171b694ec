package releases

import (
	"context"
	"errors"
	"time"

	"shifremenlanding/internal/ghrel"
)

// Retry calls fn up to attempts times, doubling the delay after each failure.
// Context cancellation and deadline errors are returned immediately.
// fn is always tried at least once.
func Retry(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if i == attempts-1 {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return ctx.Err()
}

// DownloadWithRetry downloads a via src, retrying transient failures.
func DownloadWithRetry(ctx context.Context, src Source, a ghrel.Asset, outPath string) (int64, error) {
	var n int64
	err := Retry(ctx, 3, 500*time.Millisecond, func() error {
		written, err := src.DownloadAsset(ctx, a, outPath)
		n = written
		return err
	})
	return n, err
}
