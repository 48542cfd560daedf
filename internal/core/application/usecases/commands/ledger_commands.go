package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrOpenFundCommandIsNotConstructed = errors.New(
		"OpenFundCommand must be created via NewOpenFundCommand constructor",
	)
	ErrCloseFundCommandIsNotConstructed = errors.New(
		"CloseFundCommand must be created via NewCloseFundCommand constructor",
	)
	ErrCreditFundCommandIsNotConstructed = errors.New(
		"CreditFundCommand must be created via NewCreditFundCommand constructor",
	)
	ErrDebitFundCommandIsNotConstructed = errors.New(
		"DebitFundCommand must be created via NewDebitFundCommand constructor",
	)
	ErrRefundFundCommandIsNotConstructed = errors.New(
		"RefundFundCommand must be created via NewRefundFundCommand constructor",
	)
)

// OpenFundCommand opens a prepaid fund for a client.
type OpenFundCommand struct {
	clientID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewOpenFundCommand(clientID kernel.UUID) (OpenFundCommand, error) {
	if err := clientID.Validate(); err != nil {
		return OpenFundCommand{}, err
	}
	return OpenFundCommand{clientID: clientID, guard: guard.NewConstructorGuard()}, nil
}

func (c OpenFundCommand) Validate() error {
	return c.guard.Validate(ErrOpenFundCommandIsNotConstructed)
}

func (c OpenFundCommand) ClientID() kernel.UUID { return c.clientID }

// CloseFundCommand deactivates the client's fund.
type CloseFundCommand struct {
	clientID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewCloseFundCommand(clientID kernel.UUID) (CloseFundCommand, error) {
	if err := clientID.Validate(); err != nil {
		return CloseFundCommand{}, err
	}
	return CloseFundCommand{clientID: clientID, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseFundCommand) Validate() error {
	return c.guard.Validate(ErrCloseFundCommandIsNotConstructed)
}

func (c CloseFundCommand) ClientID() kernel.UUID { return c.clientID }

// CreditFundCommand tops up a client's fund. Repeating it credits again.
type CreditFundCommand struct {
	clientID kernel.UUID
	amount   kernel.Amount
	note     string
	guard    guard.ConstructorGuard
}

func NewCreditFundCommand(clientID kernel.UUID, amount kernel.Amount, note string) (CreditFundCommand, error) {
	if err := errors.Join(clientID.Validate(), amount.ValidatePositive()); err != nil {
		return CreditFundCommand{}, err
	}
	return CreditFundCommand{
		clientID: clientID,
		amount:   amount,
		note:     strings.TrimSpace(note),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreditFundCommand) Validate() error {
	return c.guard.Validate(ErrCreditFundCommandIsNotConstructed)
}

func (c CreditFundCommand) ClientID() kernel.UUID { return c.clientID }
func (c CreditFundCommand) Amount() kernel.Amount { return c.amount }
func (c CreditFundCommand) Note() string          { return c.note }

// DebitFundCommand pays an order from the client's fund. The order id is the
// idempotency key.
type DebitFundCommand struct {
	clientID kernel.UUID
	orderID  kernel.UUID
	amount   kernel.Amount
	guard    guard.ConstructorGuard
}

func NewDebitFundCommand(clientID, orderID kernel.UUID, amount kernel.Amount) (DebitFundCommand, error) {
	if err := errors.Join(clientID.Validate(), orderID.Validate(), amount.ValidatePositive()); err != nil {
		return DebitFundCommand{}, err
	}
	return DebitFundCommand{
		clientID: clientID,
		orderID:  orderID,
		amount:   amount,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DebitFundCommand) Validate() error {
	return c.guard.Validate(ErrDebitFundCommandIsNotConstructed)
}

func (c DebitFundCommand) ClientID() kernel.UUID { return c.clientID }
func (c DebitFundCommand) OrderID() kernel.UUID  { return c.orderID }
func (c DebitFundCommand) Amount() kernel.Amount { return c.amount }

// RefundFundCommand returns the debit of an order to the fund it came from.
type RefundFundCommand struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewRefundFundCommand(orderID kernel.UUID) (RefundFundCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RefundFundCommand{}, err
	}
	return RefundFundCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c RefundFundCommand) Validate() error {
	return c.guard.Validate(ErrRefundFundCommandIsNotConstructed)
}

func (c RefundFundCommand) OrderID() kernel.UUID { return c.orderID }
