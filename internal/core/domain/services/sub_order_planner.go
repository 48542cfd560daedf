package services

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/pkg/errs"
)

// RoutedItem is an order line with the kitchen the router chose for it.
type RoutedItem struct {
	Item      suborder.Item
	KitchenID kernel.UUID
}

// SubOrderPlanner builds the work units of a new order.
type SubOrderPlanner struct{}

func NewSubOrderPlanner() SubOrderPlanner {
	return SubOrderPlanner{}
}

// CreateWorkUnits groups routed items by kitchen and creates one sub-order
// per kitchen, in the order kitchens first appear in items. Each sub-order
// inherits the serving unit of o and is attached to it, so o.Total() ends up
// as the sum of the sub-order totals.
func (p SubOrderPlanner) CreateWorkUnits(o *order.Order, items []RoutedItem, now time.Time) ([]*suborder.SubOrder, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	var kitchens []kernel.UUID
	grouped := make(map[kernel.UUID][]suborder.Item)
	for _, it := range items {
		if err := it.KitchenID.Validate(); err != nil {
			return nil, err
		}
		if _, seen := grouped[it.KitchenID]; !seen {
			kitchens = append(kitchens, it.KitchenID)
		}
		grouped[it.KitchenID] = append(grouped[it.KitchenID], it.Item)
	}

	subOrders := make([]*suborder.SubOrder, 0, len(kitchens))
	for position, kitchenID := range kitchens {
		s, err := suborder.NewSubOrder(kernel.NewUUID(), o.ID(), kitchenID, o.ServingUnitID(), position, grouped[kitchenID], now)
		if err != nil {
			return nil, err
		}
		if err = o.AttachSubOrder(s.ID(), s.Total()); err != nil {
			return nil, err
		}
		subOrders = append(subOrders, s)
	}

	return subOrders, nil
}
