package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/suborder"
)

// SubOrderRepository defines the persistence contract for sub-orders.
type SubOrderRepository interface {
	// Add persists a new sub-order with its items.
	Add(ctx context.Context, aggregate *suborder.SubOrder) error

	// Update writes status, milestones and version only if the stored version
	// still equals aggregate.BaseVersion().
	// Returns errs.ConcurrentModificationError when another writer got there first.
	Update(ctx context.Context, aggregate *suborder.SubOrder) error

	// Get retrieves a sub-order with its items.
	Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error)

	// ListByOrder returns the sub-orders of an order by position.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*suborder.SubOrder, error)
}
