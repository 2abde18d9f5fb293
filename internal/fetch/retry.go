package fetch

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"time"
)

// retryable reports whether a failed attempt is worth repeating: server
// errors, rate limiting and network timeouts.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == 429
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

// backoff returns the delay before attempt n (0-indexed) with jitter.
func backoff(attempt int) time.Duration {
	// Cap the exponent so the shift cannot overflow.
	base := time.Duration(1<<min(max(attempt, 0), 5)) * 250 * time.Millisecond
	if base > 5*time.Second {
		base = 5 * time.Second
	}
	return base + time.Duration(rand.Int64N(int64(base)/2))
}
