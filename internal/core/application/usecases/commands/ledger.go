package commands

import (
	"context"

	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// ledgerRunner executes ledger operations: one SERIALIZABLE unit of work per
// attempt, retried on serialization failures, lost version races and
// duplicate movements.
type ledgerRunner struct {
	uowFactory LedgerUoWFactory
	retry      RetryPolicy
	logger     *zap.Logger
}

func (r ledgerRunner) run(ctx context.Context, operation string, fn func(funds ports.FundRepository) error) error {
	return r.retry.retry(ctx, r.logger, operation, func() error {
		uow := r.uowFactory.Create()
		if err := uow.BeginSerializable(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		if err := fn(uow.FundRepository()); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
