package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery lists orders that have not reached a terminal status,
// oldest first. It backs the floor view of a serving unit.
//
// Example:
//
//	query, err := NewGetOpenOrdersQuery(&terraceID)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
//	for _, o := range orders {
//	    fmt.Printf("%s %s %d\n", o.Number, o.Status, o.Total)
//	}
type GetOpenOrdersQuery struct {
	servingUnitID *kernel.UUID
	guard         guard.ConstructorGuard
}

// NewGetOpenOrdersQuery restricts the list to one serving unit when
// servingUnitID is set.
func NewGetOpenOrdersQuery(servingUnitID *kernel.UUID) (GetOpenOrdersQuery, error) {
	q := GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
	if servingUnitID != nil {
		if err := servingUnitID.Validate(); err != nil {
			return GetOpenOrdersQuery{}, err
		}
		id := *servingUnitID
		q.servingUnitID = &id
	}
	return q, nil
}

func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

func (q GetOpenOrdersQuery) ServingUnitID() *kernel.UUID { return q.servingUnitID }

type GetOpenOrdersQueryResponse struct {
	ID            kernel.UUID
	Number        string
	ServingUnitID kernel.UUID
	PaymentMode   string
	Status        string
	Total         kernel.Amount
	CreatedAt     time.Time
}
