package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRecomputeOrderStatusCommandIsNotConstructed = errors.New(
	"RecomputeOrderStatusCommand must be created via NewRecomputeOrderStatusCommand constructor",
)

// RecomputeOrderStatusCommand re-derives an order status from its sub-orders.
// Transitions already do this; the command exists for operators and repair
// scripts.
type RecomputeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewRecomputeOrderStatusCommand(orderID kernel.UUID, actor kernel.Actor) (RecomputeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return RecomputeOrderStatusCommand{}, err
	}
	return RecomputeOrderStatusCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RecomputeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeOrderStatusCommandIsNotConstructed)
}

func (c RecomputeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c RecomputeOrderStatusCommand) Actor() kernel.Actor  { return c.actor }
