package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetFundQueryIsNotConstructed = errors.New("GetFundQuery must be created via NewGetFundQuery constructor")

// GetFundQuery reads a client's fund and its movements.
type GetFundQuery struct {
	clientID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetFundQuery(clientID kernel.UUID) (GetFundQuery, error) {
	if err := clientID.Validate(); err != nil {
		return GetFundQuery{}, err
	}
	return GetFundQuery{clientID: clientID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetFundQuery) Validate() error {
	return q.guard.Validate(ErrGetFundQueryIsNotConstructed)
}

func (q GetFundQuery) ClientID() kernel.UUID { return q.clientID }

type GetFundQueryResponse struct {
	ID        kernel.UUID
	ClientID  kernel.UUID
	Balance   kernel.Amount
	Active    bool
	Version   int
	Movements []MovementView
}

type MovementView struct {
	ID            kernel.UUID
	Kind          string
	Amount        kernel.Amount
	BalanceBefore kernel.Amount
	BalanceAfter  kernel.Amount
	OrderID       *kernel.UUID
	Note          string
	CreatedAt     time.Time
}
