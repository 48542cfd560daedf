package order

import (
	"errors"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a client request placed at a serving unit.
//
// Order follows these invariants:
//   - Must have valid identifiers for itself, the client and the serving unit
//   - Its status is only changed by ApplyAggregatedStatus
//   - Its total equals the sum of the attached sub-order totals
//   - Sub-order ids keep the order in which they were attached
//
// The Order does not own the sub-orders; it references them by id and the
// sub-orders are loaded through their own repository.
type Order struct {
	id            kernel.UUID
	number        string
	clientID      kernel.UUID
	servingUnitID kernel.UUID
	paymentMode   PaymentMode
	status        Status
	total         kernel.Amount
	subOrderIDs   []kernel.UUID
	createdAt     time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Created status with no sub-orders.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - clientID: The client the order is billed to
//   - servingUnitID: The dining room, bar or room-service desk the order came from
//   - mode: Prepaid or Deferred
//   - now: Creation time, also used for the order number
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), clientID, unitID, order.Prepaid, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id, clientID, servingUnitID kernel.UUID, mode PaymentMode, now time.Time) (*Order, error) {
	o := &Order{
		status:    Created,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setServingUnitID(servingUnitID),
		o.setPaymentMode(mode),
	); err != nil {
		return nil, err
	}
	o.number = NewNumber(id, o.createdAt)

	return o, nil
}

// RestoreOrder rebuilds an Order from persistence, validating every field.
func RestoreOrder(
	id kernel.UUID,
	number string,
	clientID, servingUnitID kernel.UUID,
	mode PaymentMode,
	status Status,
	total kernel.Amount,
	subOrderIDs []kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setClientID(clientID),
		o.setServingUnitID(servingUnitID),
		o.setPaymentMode(mode),
		o.setStatus(status),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}
	o.subOrderIDs = slices.Clone(subOrderIDs)

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder
// or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// ClientID returns the client the order is billed to.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// ServingUnitID returns the serving unit the order originates from.
func (o *Order) ServingUnitID() kernel.UUID {
	return o.servingUnitID
}

// PaymentMode returns how the order is settled.
func (o *Order) PaymentMode() PaymentMode {
	return o.paymentMode
}

// Status returns the last aggregated status.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the sum of the attached sub-order totals.
func (o *Order) Total() kernel.Amount {
	return o.total
}

// CreatedAt returns the creation time in UTC.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// SubOrderIDs returns a copy of the sub-order ids in attachment order.
func (o *Order) SubOrderIDs() []kernel.UUID {
	return slices.Clone(o.subOrderIDs)
}

// AttachSubOrder records a sub-order of this order and adds its total.
//
// Returns:
//   - nil on success
//   - error if the id is invalid, already attached, the total is negative,
//     or the order left Created
func (o *Order) AttachSubOrder(subOrderID kernel.UUID, total kernel.Amount) error {
	if err := errors.Join(subOrderID.Validate(), total.Validate()); err != nil {
		return err
	}
	if o.status != Created {
		return errs.NewInvalidTransitionError("order "+o.id.String(), o.status.String(), "accepting sub-orders")
	}
	if slices.ContainsFunc(o.subOrderIDs, subOrderID.IsEqual) {
		return errs.NewValueIsInvalidError("sub-order is already attached")
	}

	sum, err := o.total.Add(total)
	if err != nil {
		return err
	}
	o.subOrderIDs = append(o.subOrderIDs, subOrderID)
	o.total = sum
	return nil
}

// ApplyAggregatedStatus stores a status computed from the sub-orders.
//
// Returns:
//   - changed=false when the order already holds status (no write is needed)
//   - error if status is invalid
func (o *Order) ApplyAggregatedStatus(status Status) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}
	if o.status == status {
		return false, nil
	}
	o.status = status
	return true, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if err := ValidateNumber(number); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.clientID = id
	return nil
}

func (o *Order) setServingUnitID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.servingUnitID = id
	return nil
}

func (o *Order) setPaymentMode(mode PaymentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	o.paymentMode = mode
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTotal(total kernel.Amount) error {
	if err := total.Validate(); err != nil {
		return err
	}
	o.total = total
	return nil
}
