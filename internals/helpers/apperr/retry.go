package apperr

import (
	"context"
	"time"
)

type RetryPolicy struct {
	Attempts int
	Base     time.Duration
}

var DefaultRetry = RetryPolicy{Attempts: 3, Base: 50 * time.Millisecond}

// Retry runs fn until it succeeds, fails with a non-transient error or the
// attempts run out. The wait doubles after every transient failure.
func Retry(ctx context.Context, p RetryPolicy, fn func(ctx context.Context) error) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	wait := p.Base
	var err error
	for i := 0; i < p.Attempts; i++ {
		if err = fn(ctx); err == nil || !IsTransient(err) {
			return err
		}
		if i == p.Attempts-1 {
			break
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
	return err
}
