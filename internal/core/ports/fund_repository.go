package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/fund"
	"fulfillment/internal/core/domain/model/kernel"
)

// FundRepository defines the persistence contract for prepaid funds and
// their ledger movements.
type FundRepository interface {
	Add(ctx context.Context, aggregate *fund.Fund) error

	// Update writes balance, active flag and version only if the stored
	// version still equals aggregate.BaseVersion().
	// Returns errs.ConcurrentModificationError otherwise.
	Update(ctx context.Context, aggregate *fund.Fund) error

	Get(ctx context.Context, id kernel.UUID) (*fund.Fund, error)

	// GetByClient returns the client's active fund, or the most recently
	// opened closed one when none is active.
	GetByClient(ctx context.Context, clientID kernel.UUID) (*fund.Fund, error)

	// AddMovement appends a movement. A second Debit or Refund for the same
	// order fails with errs.AlreadyExistsError.
	AddMovement(ctx context.Context, movement *fund.Movement) error

	// FindMovement returns the movement of kind recorded for orderID.
	// Returns errs.ObjectNotFoundError if there is none.
	FindMovement(ctx context.Context, orderID kernel.UUID, kind fund.MovementKind) (*fund.Movement, error)

	// ListMovements returns the movements of a fund, oldest first.
	ListMovements(ctx context.Context, fundID kernel.UUID) ([]*fund.Movement, error)
}
