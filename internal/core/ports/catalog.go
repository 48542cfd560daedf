package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// MenuItem is what the catalog knows about a dish or drink.
type MenuItem struct {
	ID        kernel.UUID
	Name      string
	Category  string
	UnitPrice kernel.Amount
	Available bool
}

// Catalog resolves menu items. It is a read-only collaborator.
type Catalog interface {
	// Resolve returns the requested items keyed by id. Unknown ids are
	// reported with errs.ObjectNotFoundError.
	Resolve(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]MenuItem, error)
}
