package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSetKitchenActiveCommandIsNotConstructed = errors.New(
	"SetKitchenActiveCommand must be created via NewSetKitchenActiveCommand constructor",
)

// SetKitchenActiveCommand puts a kitchen in or out of routing.
type SetKitchenActiveCommand struct {
	kitchenID kernel.UUID
	active    bool
	actor     kernel.Actor
	guard     guard.ConstructorGuard
}

func NewSetKitchenActiveCommand(kitchenID kernel.UUID, active bool, actor kernel.Actor) (SetKitchenActiveCommand, error) {
	if err := errors.Join(kitchenID.Validate(), actor.Validate()); err != nil {
		return SetKitchenActiveCommand{}, err
	}
	return SetKitchenActiveCommand{
		kitchenID: kitchenID,
		active:    active,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetKitchenActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetKitchenActiveCommandIsNotConstructed)
}

func (c SetKitchenActiveCommand) KitchenID() kernel.UUID { return c.kitchenID }
func (c SetKitchenActiveCommand) Active() bool           { return c.active }
func (c SetKitchenActiveCommand) Actor() kernel.Actor    { return c.actor }
