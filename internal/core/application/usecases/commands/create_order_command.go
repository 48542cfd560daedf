package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one requested menu item.
type OrderLine struct {
	MenuItemID kernel.UUID
	Quantity   int
	Notes      string
}

// CreateOrderCommand represents a client submitting items at a serving unit.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(clientID, terraceID, order.Prepaid, []OrderLine{
//	    {MenuItemID: tiramisuID, Quantity: 2},
//	    {MenuItemID: negroniID, Quantity: 1},
//	}, actor)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	clientID      kernel.UUID
	servingUnitID kernel.UUID
	paymentMode   order.PaymentMode
	lines         []OrderLine
	actor         kernel.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers, payment mode and lines.
// Every line needs a menu item and a positive quantity.
func NewCreateOrderCommand(
	clientID, servingUnitID kernel.UUID,
	mode order.PaymentMode,
	lines []OrderLine,
	actor kernel.Actor,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientID(clientID),
		cmd.setServingUnitID(servingUnitID),
		cmd.setPaymentMode(mode),
		cmd.setLines(lines),
		actor.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.actor = actor

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ClientID() kernel.UUID          { return c.clientID }
func (c CreateOrderCommand) ServingUnitID() kernel.UUID     { return c.servingUnitID }
func (c CreateOrderCommand) PaymentMode() order.PaymentMode { return c.paymentMode }
func (c CreateOrderCommand) Actor() kernel.Actor            { return c.actor }

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.clientID = id
	return nil
}

func (c *CreateOrderCommand) setServingUnitID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.servingUnitID = id
	return nil
}

func (c *CreateOrderCommand) setPaymentMode(mode order.PaymentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	c.paymentMode = mode
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}
	var errList []error
	for i, l := range lines {
		if err := l.MenuItemID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("line %d: %w", i, err))
		}
		if l.Quantity <= 0 {
			errList = append(errList, fmt.Errorf("line %d: %w", i,
				errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", l.Quantity))))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
