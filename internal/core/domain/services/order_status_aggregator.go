package services

import (
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/suborder"
)

// AggregateOrderStatus derives the order status from its sub-order statuses:
//
//	all Delivered                -> Finalized
//	all Cancelled                -> Cancelled
//	any sub-order past Created   -> InProgress (mixed terminal sets included)
//	otherwise                    -> Created
//
// An order without sub-orders is Created.
func AggregateOrderStatus(statuses []suborder.Status) order.Status {
	if len(statuses) == 0 {
		return order.Created
	}

	var delivered, cancelled, progressed int
	for _, s := range statuses {
		switch s { //nolint:exhaustive // only the counted statuses matter
		case suborder.Delivered:
			delivered++
		case suborder.Cancelled:
			cancelled++
		}
		if s != suborder.Created {
			progressed++
		}
	}

	switch {
	case delivered == len(statuses):
		return order.Finalized
	case cancelled == len(statuses):
		return order.Cancelled
	case progressed > 0:
		return order.InProgress
	default:
		return order.Created
	}
}
