package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/config"
)

type stopError struct{ err error }

func (s stopError) Error() string { return s.err.Error() }
func (s stopError) Unwrap() error { return s.err }

// Stop wraps an error so Do returns it immediately instead of retrying.
// Callers unwrap transparently via errors.Is/As.
func Stop(err error) error { return stopError{err} }

// Do runs fn up to policy.Attempts times with exponential backoff and
// jitter. Only idempotent calls should go through here; order submission
// must never be retried automatically.
func Do(ctx context.Context, policy config.Retry, fn func() error) error {
	if policy.Attempts < 1 {
		return fn()
	}

	d := policy.Base
	var err error

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < policy.Attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}

		var stop stopError
		if errors.As(err, &stop) {
			return stop.err
		}

		if i == policy.Attempts-1 {
			break
		}

		delay := d
		if policy.JitterFactor > 0 {
			jitter := 1 + policy.JitterFactor*(2*r.Float64()-1)
			delay = time.Duration(float64(delay) * jitter)
		}
		if policy.Max > 0 && delay > policy.Max {
			delay = policy.Max
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		d *= 2
		if policy.Max > 0 && d > policy.Max {
			d = policy.Max
		}
	}
	return err
}
