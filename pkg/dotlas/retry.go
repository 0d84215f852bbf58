package dotlas

import (
	"context"
	"math/rand"
	"net/http"
	"time"
)

const (
	baseBackoff = 500 * time.Millisecond
	maxBackoff  = 8 * time.Second
)

// retryable reports whether a status is worth retrying when retries are
// enabled: rate limiting and server-side failures only. Auth, not-found and
// validation responses are deterministic and always surface immediately.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// backoff sleeps for an exponentially growing interval with jitter, or
// returns early when the context is done.
func backoff(ctx context.Context, attempt int) error {
	d := baseBackoff << attempt
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int63n(int64(250 * time.Millisecond)))

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
