// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SerializableTxManager additionally starts SERIALIZABLE transactions,
	// required by every ledger movement.
	SerializableTxManager interface {
		TxManager
		BeginSerializable(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SubOrderRepoFactory provides access to sub-order repository within a transaction.
	SubOrderRepoFactory interface {
		SubOrderRepository() ports.SubOrderRepository
	}

	// KitchenRepoFactory provides access to kitchen repository within a transaction.
	KitchenRepoFactory interface {
		KitchenRepository() ports.KitchenRepository
	}

	// FundRepoFactory provides access to fund repository within a transaction.
	FundRepoFactory interface {
		FundRepository() ports.FundRepository
	}

	// AuditRepoFactory provides access to audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// KitchenUoW manages transactions for kitchen registry operations.
	KitchenUoW interface {
		TxManager
		KitchenRepoFactory
	}

	// KitchenUoWFactory creates new kitchen unit of work instances.
	KitchenUoWFactory interface {
		Create() KitchenUoW
	}

	// LedgerUoW manages serializable transactions over funds and movements.
	LedgerUoW interface {
		SerializableTxManager
		FundRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// AuditUoW manages transactions touching only the audit log.
	AuditUoW interface {
		TxManager
		AuditRepoFactory
	}

	// AuditUoWFactory creates new audit unit of work instances.
	AuditUoWFactory interface {
		Create() AuditUoW
	}

	// UoW manages transactions across orders, sub-orders, kitchens, funds
	// and the audit log. Order creation and sub-order transitions use it.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   subOrders := uow.SubOrderRepository()
	//   events := uow.AuditRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		SerializableTxManager
		OrderRepoFactory
		SubOrderRepoFactory
		KitchenRepoFactory
		FundRepoFactory
		AuditRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
