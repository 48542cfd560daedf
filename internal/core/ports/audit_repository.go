package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
)

// AuditRepository is the append-only store of transition events.
type AuditRepository interface {
	Append(ctx context.Context, events ...*audit.Event) error

	// Find returns events matching filter, oldest first.
	Find(ctx context.Context, filter audit.Filter) ([]*audit.Event, error)

	// CountByOrder counts order-level and sub-order-level events of an order.
	CountByOrder(ctx context.Context, orderID kernel.UUID) (int64, error)

	// MeanLatencyByKitchen averages the elapsed time of sub-order transition
	// events per kitchen. Creation events are excluded. A nil kitchenID
	// returns every kitchen.
	MeanLatencyByKitchen(ctx context.Context, kitchenID *kernel.UUID) ([]audit.KitchenLatency, error)

	// PurgeOlderThan deletes events that occurred before cutoff and returns
	// how many were removed. Only the retention job calls it.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
