package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/fund"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"go.uber.org/zap"
)

// OpenFundCommandHandler opens a fund, or returns the client's active one:
// a client never holds two active funds.
type OpenFundCommandHandler struct {
	runner ledgerRunner
}

func NewOpenFundCommandHandler(uowFactory LedgerUoWFactory, retry RetryPolicy, logger *zap.Logger) OpenFundCommandHandler {
	return OpenFundCommandHandler{runner: ledgerRunner{uowFactory: uowFactory, retry: retry, logger: logger}}
}

func (h OpenFundCommandHandler) Handle(ctx context.Context, cmd OpenFundCommand) (*fund.Fund, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *fund.Fund
	err := h.runner.run(ctx, "open fund", func(funds ports.FundRepository) error {
		existing, err := funds.GetByClient(ctx, cmd.ClientID())
		switch {
		case err == nil && existing.IsActive():
			result = existing
			return nil
		case err != nil && !errors.Is(err, errs.ErrObjectNotFound):
			return err
		}

		f, err := fund.NewFund(kernel.NewUUID(), cmd.ClientID(), time.Now().UTC())
		if err != nil {
			return err
		}
		if err = funds.Add(ctx, f); err != nil {
			return err
		}
		result = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CloseFundCommandHandler deactivates the client's fund. Closing a closed
// fund changes nothing.
type CloseFundCommandHandler struct {
	runner ledgerRunner
}

func NewCloseFundCommandHandler(uowFactory LedgerUoWFactory, retry RetryPolicy, logger *zap.Logger) CloseFundCommandHandler {
	return CloseFundCommandHandler{runner: ledgerRunner{uowFactory: uowFactory, retry: retry, logger: logger}}
}

func (h CloseFundCommandHandler) Handle(ctx context.Context, cmd CloseFundCommand) (*fund.Fund, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *fund.Fund
	err := h.runner.run(ctx, "close fund", func(funds ports.FundRepository) error {
		f, err := funds.GetByClient(ctx, cmd.ClientID())
		if err != nil {
			return err
		}
		if f.Close() {
			if err = funds.Update(ctx, f); err != nil {
				return err
			}
		}
		result = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreditFundCommandHandler records a top-up.
type CreditFundCommandHandler struct {
	runner ledgerRunner
}

func NewCreditFundCommandHandler(uowFactory LedgerUoWFactory, retry RetryPolicy, logger *zap.Logger) CreditFundCommandHandler {
	return CreditFundCommandHandler{runner: ledgerRunner{uowFactory: uowFactory, retry: retry, logger: logger}}
}

func (h CreditFundCommandHandler) Handle(ctx context.Context, cmd CreditFundCommand) (*fund.Movement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *fund.Movement
	err := h.runner.run(ctx, "credit fund", func(funds ports.FundRepository) error {
		f, err := funds.GetByClient(ctx, cmd.ClientID())
		if err != nil {
			return err
		}
		m, err := f.Credit(cmd.Amount(), cmd.Note(), time.Now().UTC())
		if err != nil {
			return err
		}
		if err = persistMovement(ctx, funds, f, m); err != nil {
			return err
		}
		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DebitFundCommandHandler pays an order. A second debit for the same order
// returns the first movement and leaves the balance alone.
type DebitFundCommandHandler struct {
	runner ledgerRunner
}

func NewDebitFundCommandHandler(uowFactory LedgerUoWFactory, retry RetryPolicy, logger *zap.Logger) DebitFundCommandHandler {
	return DebitFundCommandHandler{runner: ledgerRunner{uowFactory: uowFactory, retry: retry, logger: logger}}
}

func (h DebitFundCommandHandler) Handle(ctx context.Context, cmd DebitFundCommand) (*fund.Movement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *fund.Movement
	err := h.runner.run(ctx, "debit fund", func(funds ports.FundRepository) error {
		existing, err := findMovement(ctx, funds, cmd.OrderID(), fund.Debit)
		if err != nil {
			return err
		}
		if existing != nil {
			owner, getErr := funds.Get(ctx, existing.FundID())
			if getErr != nil {
				return getErr
			}
			if !owner.ClientID().IsEqual(cmd.ClientID()) {
				return errs.NewValueIsInvalidError("order was debited from another client's fund")
			}
			result = existing
			return nil
		}

		f, err := funds.GetByClient(ctx, cmd.ClientID())
		if err != nil {
			return err
		}
		m, err := f.Debit(cmd.OrderID(), cmd.Amount(), time.Now().UTC())
		if err != nil {
			return err
		}
		if err = persistMovement(ctx, funds, f, m); err != nil {
			return err
		}
		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RefundFundCommandHandler credits back the debit of an order to the same
// fund. It is idempotent per order and requires a prior debit.
type RefundFundCommandHandler struct {
	runner ledgerRunner
}

func NewRefundFundCommandHandler(uowFactory LedgerUoWFactory, retry RetryPolicy, logger *zap.Logger) RefundFundCommandHandler {
	return RefundFundCommandHandler{runner: ledgerRunner{uowFactory: uowFactory, retry: retry, logger: logger}}
}

func (h RefundFundCommandHandler) Handle(ctx context.Context, cmd RefundFundCommand) (*fund.Movement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *fund.Movement
	err := h.runner.run(ctx, "refund fund", func(funds ports.FundRepository) error {
		existing, err := findMovement(ctx, funds, cmd.OrderID(), fund.Refund)
		if err != nil {
			return err
		}
		if existing != nil {
			result = existing
			return nil
		}

		debit, err := funds.FindMovement(ctx, cmd.OrderID(), fund.Debit)
		if err != nil {
			return err
		}
		f, err := funds.Get(ctx, debit.FundID())
		if err != nil {
			return err
		}
		m, err := f.Refund(debit, time.Now().UTC())
		if err != nil {
			return err
		}
		if err = persistMovement(ctx, funds, f, m); err != nil {
			return err
		}
		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// findMovement returns nil without error when the order has no movement of kind.
func findMovement(ctx context.Context, funds ports.FundRepository, orderID kernel.UUID, kind fund.MovementKind) (*fund.Movement, error) {
	m, err := funds.FindMovement(ctx, orderID, kind)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return m, err
}

// persistMovement writes the version-gated fund first so a lost race never
// leaves an orphan movement behind.
func persistMovement(ctx context.Context, funds ports.FundRepository, f *fund.Fund, m *fund.Movement) error {
	if err := funds.Update(ctx, f); err != nil {
		return err
	}
	return funds.AddMovement(ctx, m)
}
