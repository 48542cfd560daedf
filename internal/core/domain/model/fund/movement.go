package fund

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MovementKind is the direction and reason of a balance change.
type MovementKind string

const (
	// Credit is a manual or gateway top-up. It carries no idempotency key.
	Credit MovementKind = "credit"
	// Debit pays a prepaid order. One per order.
	Debit MovementKind = "debit"
	// Refund returns a debited amount. One per order, only after a debit.
	Refund MovementKind = "refund"
)

func ParseMovementKind(s string) (MovementKind, error) {
	k := MovementKind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k MovementKind) Validate() error {
	switch k {
	case Credit, Debit, Refund:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("movement kind is invalid", fmt.Errorf("%q is not a valid movement kind", string(k)))
	}
}

func (k MovementKind) String() string {
	return string(k)
}

// Movement is one balance change. It is never updated once persisted.
type Movement struct {
	id            kernel.UUID
	fundID        kernel.UUID
	kind          MovementKind
	amount        kernel.Amount
	balanceBefore kernel.Amount
	balanceAfter  kernel.Amount
	orderID       *kernel.UUID
	note          string
	createdAt     time.Time
}

// RestoreMovement rebuilds a persisted movement and re-checks its arithmetic.
func RestoreMovement(
	id, fundID kernel.UUID,
	kind MovementKind,
	amount, balanceBefore, balanceAfter kernel.Amount,
	orderID *kernel.UUID,
	note string,
	createdAt time.Time,
) (*Movement, error) {
	var errList []error
	errList = append(errList, id.Validate(), fundID.Validate(), kind.Validate(), amount.ValidatePositive(),
		balanceBefore.Validate(), balanceAfter.Validate())
	if kind != Credit && orderID == nil {
		errList = append(errList, errs.NewValueIsRequiredError("order id"))
	}
	if orderID != nil {
		errList = append(errList, orderID.Validate())
	}
	expected, sumErr := balanceBefore.Add(amount)
	if kind == Debit {
		expected, sumErr = balanceBefore.Sub(amount), nil
	}
	if sumErr != nil {
		errList = append(errList, sumErr)
	} else if expected != balanceAfter {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("movement is invalid",
			fmt.Errorf("%s of %d from %d cannot end at %d", kind, amount, balanceBefore, balanceAfter)))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Movement{
		id:            id,
		fundID:        fundID,
		kind:          kind,
		amount:        amount,
		balanceBefore: balanceBefore,
		balanceAfter:  balanceAfter,
		orderID:       cloneID(orderID),
		note:          note,
		createdAt:     createdAt.UTC(),
	}, nil
}

func (m *Movement) ID() kernel.UUID              { return m.id }
func (m *Movement) FundID() kernel.UUID          { return m.fundID }
func (m *Movement) Kind() MovementKind           { return m.kind }
func (m *Movement) Amount() kernel.Amount        { return m.amount }
func (m *Movement) BalanceBefore() kernel.Amount { return m.balanceBefore }
func (m *Movement) BalanceAfter() kernel.Amount  { return m.balanceAfter }
func (m *Movement) OrderID() *kernel.UUID        { return cloneID(m.orderID) }
func (m *Movement) Note() string                 { return m.note }
func (m *Movement) CreatedAt() time.Time         { return m.createdAt }

func cloneID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
