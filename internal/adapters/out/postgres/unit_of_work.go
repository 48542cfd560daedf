// Package postgres provides the GORM-based Unit of Work. Every repository
// handed out by a unit of work shares its transaction, so an order, its
// sub-orders, the kitchen load, the ledger movement and the audit events of
// one command commit or roll back together.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.SubOrderRepository().Update(ctx, so); err != nil {
//	    return err
//	}
//	if err := uow.AuditRepository().Append(ctx, event); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Ledger movements start with BeginSerializable instead. The store then
// aborts one of two overlapping transactions with
// errs.SerializationFailureError, which the caller retries.
package postgres

import (
	"context"
	"database/sql"

	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/adapters/out/postgres/fundrepo"
	"fulfillment/internal/adapters/out/postgres/kitchenrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/suborderrepo"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work with its own transaction.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction. It is not safe for
// concurrent use; goroutines create their own.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction at the default isolation level. Calling it on a
// unit of work that already has a transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	return uow.begin(ctx)
}

func (uow *GormUnitOfWork) BeginSerializable(ctx context.Context) error {
	return uow.begin(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (uow *GormUnitOfWork) begin(ctx context.Context, opts ...*sql.TxOptions) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin(opts...)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	uow.tx = tx
	return nil
}

// Commit closes the transaction. Serialization aborts raised at commit time
// are reported as errs.SerializationFailureError.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return translateError(err)
}

// Rollback discards the transaction. After Commit it returns
// gorm.ErrInvalidTransaction, which deferred calls ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the transaction when one is open, the pool otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) SubOrderRepository() ports.SubOrderRepository {
	return suborderrepo.NewGormSubOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) KitchenRepository() ports.KitchenRepository {
	return kitchenrepo.NewGormKitchenRepository(uow.conn())
}

func (uow *GormUnitOfWork) FundRepository() ports.FundRepository {
	return fundrepo.NewGormFundRepository(uow.conn())
}

func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}
