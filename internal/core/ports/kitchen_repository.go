package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
)

// KitchenRepository defines the persistence contract for kitchens and their
// serving unit links.
type KitchenRepository interface {
	Add(ctx context.Context, aggregate *kitchen.Kitchen) error

	// Update persists the active flag. The load counter is never written from
	// a snapshot, see AdjustLoad.
	Update(ctx context.Context, aggregate *kitchen.Kitchen) error

	Get(ctx context.Context, id kernel.UUID) (*kitchen.Kitchen, error)

	// FindActiveByType returns every active kitchen of a type with its
	// serving units, whatever unit they serve.
	FindActiveByType(ctx context.Context, kind kitchen.Type) ([]*kitchen.Kitchen, error)

	// AdjustLoad atomically adds delta to the active sub-order counter,
	// never letting it drop below zero.
	AdjustLoad(ctx context.Context, id kernel.UUID, delta int) error
}
