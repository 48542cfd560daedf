// Package queries contains read operations. Order reads go straight to the
// tables through GORM; audit and ledger reads go through the repositories
// that already own the mapping.
package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/fund"
	"fulfillment/internal/core/domain/model/kernel"
)

// AuditReader is the read side of ports.AuditRepository.
type AuditReader interface {
	Find(ctx context.Context, filter audit.Filter) ([]*audit.Event, error)
	CountByOrder(ctx context.Context, orderID kernel.UUID) (int64, error)
	MeanLatencyByKitchen(ctx context.Context, kitchenID *kernel.UUID) ([]audit.KitchenLatency, error)
}

// FundReader is the read side of ports.FundRepository.
type FundReader interface {
	GetByClient(ctx context.Context, clientID kernel.UUID) (*fund.Fund, error)
	ListMovements(ctx context.Context, fundID kernel.UUID) ([]*fund.Movement, error)
}
