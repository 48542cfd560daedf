package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterKitchenCommandIsNotConstructed = errors.New(
	"RegisterKitchenCommand must be created via NewRegisterKitchenCommand constructor",
)

type RegisterKitchenCommand struct {
	name           string
	kind           kitchen.Type
	servingUnitIDs []kernel.UUID
	actor          kernel.Actor
	guard          guard.ConstructorGuard
}

func NewRegisterKitchenCommand(
	name string,
	kind kitchen.Type,
	servingUnitIDs []kernel.UUID,
	actor kernel.Actor,
) (RegisterKitchenCommand, error) {
	cmd := RegisterKitchenCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setType(kind),
		cmd.setServingUnitIDs(servingUnitIDs),
		cmd.setActor(actor),
	); err != nil {
		return RegisterKitchenCommand{}, err
	}

	return cmd, nil
}

func (c RegisterKitchenCommand) Validate() error {
	return c.guard.Validate(ErrRegisterKitchenCommandIsNotConstructed)
}

func (c RegisterKitchenCommand) Name() string                  { return c.name }
func (c RegisterKitchenCommand) Type() kitchen.Type            { return c.kind }
func (c RegisterKitchenCommand) ServingUnitIDs() []kernel.UUID { return slices.Clone(c.servingUnitIDs) }
func (c RegisterKitchenCommand) Actor() kernel.Actor           { return c.actor }

func (c *RegisterKitchenCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterKitchenCommand) setType(kind kitchen.Type) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *RegisterKitchenCommand) setServingUnitIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("serving units")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.servingUnitIDs = slices.Clone(ids)
	return nil
}

func (c *RegisterKitchenCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
