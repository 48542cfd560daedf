package commands

import (
	"context"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RetryPolicy bounds the re-execution of a unit of work that lost a
// serialization or version race.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy makes three attempts, 20ms apart at first.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     500 * time.Millisecond,
	}
}

// isLedgerRetryable extends errs.IsRetryable with unique key collisions: a
// concurrent duplicate movement is seen by the next attempt and returned
// as the idempotent result.
func isLedgerRetryable(err error) bool {
	return errs.IsRetryable(err) || errs.IsAlreadyExists(err)
}

// retry runs op until it succeeds, fails with a non-retryable error, or the
// attempts are exhausted. The last error is returned unchanged.
func (p RetryPolicy) retry(ctx context.Context, logger *zap.Logger, operation string, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	eb := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		eb.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		eb.MaxInterval = p.MaxInterval
	}
	eb.MaxElapsedTime = 0

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if !isLedgerRetryable(err) {
			return backoff.Permanent(err)
		}
		logger.Warn("unit of work lost a race, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err))
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)) //nolint:gosec // attempts >= 1
}
