package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a transaction at the store's default isolation level.
	Begin(ctx context.Context) error

	// BeginSerializable starts a SERIALIZABLE transaction. Ledger movements
	// and prepaid order creation use it; the store aborts overlapping
	// movements with errs.SerializationFailureError.
	BeginSerializable(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It is safe to call after
	// Commit.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	SubOrderRepository() SubOrderRepository
	KitchenRepository() KitchenRepository
	FundRepository() FundRepository
	AuditRepository() AuditRepository
}
