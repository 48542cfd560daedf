package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery reads an order with its sub-orders and their items.
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is a read model: statuses are their display names.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Number        string
	ClientID      kernel.UUID
	ServingUnitID kernel.UUID
	PaymentMode   string
	Status        string
	Total         kernel.Amount
	CreatedAt     time.Time
	SubOrders     []SubOrderView
}

type SubOrderView struct {
	ID           kernel.UUID
	KitchenID    kernel.UUID
	Position     int
	Status       string
	Total        kernel.Amount
	CancelReason string
	Version      int
	Items        []ItemView
}

type ItemView struct {
	MenuItemID kernel.UUID
	Name       string
	Category   string
	Quantity   int
	UnitPrice  kernel.Amount
	Notes      string
}
