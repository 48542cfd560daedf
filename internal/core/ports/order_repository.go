// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories bound to a unit of work and the catalog
// collaborator.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its sub-order id list.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the aggregated status. Nothing else of an order changes
	// after creation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns errs.ObjectNotFoundError if it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the unit of
	// work ends, so that concurrent sibling transitions aggregate one after
	// the other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
