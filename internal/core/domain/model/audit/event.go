// Package audit holds the append-only record of status transitions for
// orders and sub-orders.
package audit

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// SubjectKind tells whether an event describes an order or a sub-order.
type SubjectKind string

const (
	SubjectOrder    SubjectKind = "order"
	SubjectSubOrder SubjectKind = "sub_order"
)

func (k SubjectKind) Validate() error {
	if k != SubjectOrder && k != SubjectSubOrder {
		return errs.NewValueIsInvalidErrorWithCause("subject kind is invalid", fmt.Errorf("%q is not a valid subject kind", string(k)))
	}
	return nil
}

// Event is an immutable transition record. PreviousStatus is empty for the
// event written when the subject is created.
//
// Sub-order events also carry the kitchen, the time the transition took to
// process and whether it is critical (food at the pass or at the table).
type Event struct {
	id             kernel.UUID
	subjectKind    SubjectKind
	subjectID      kernel.UUID
	orderID        kernel.UUID
	kitchenID      *kernel.UUID
	previousStatus string
	newStatus      string
	actorID        kernel.UUID
	occurredAt     time.Time
	notes          string
	elapsed        time.Duration
	critical       bool
}

// NewOrderEvent records a change of the aggregated order status.
func NewOrderEvent(orderID kernel.UUID, previous, next string, actorID kernel.UUID, at time.Time, notes string) (*Event, error) {
	return RestoreEvent(kernel.NewUUID(), SubjectOrder, orderID, orderID, nil, previous, next, actorID, at, notes, 0, false)
}

// NewSubOrderEvent records a sub-order transition handled by kitchenID.
func NewSubOrderEvent(
	subOrderID, orderID, kitchenID kernel.UUID,
	previous, next string,
	actorID kernel.UUID,
	at time.Time,
	notes string,
	elapsed time.Duration,
	critical bool,
) (*Event, error) {
	return RestoreEvent(kernel.NewUUID(), SubjectSubOrder, subOrderID, orderID, &kitchenID,
		previous, next, actorID, at, notes, elapsed, critical)
}

func RestoreEvent(
	id kernel.UUID,
	kind SubjectKind,
	subjectID, orderID kernel.UUID,
	kitchenID *kernel.UUID,
	previous, next string,
	actorID kernel.UUID,
	at time.Time,
	notes string,
	elapsed time.Duration,
	critical bool,
) (*Event, error) {
	errList := []error{id.Validate(), kind.Validate(), subjectID.Validate(), orderID.Validate(), actorID.Validate()}
	if kind == SubjectSubOrder {
		if kitchenID == nil {
			errList = append(errList, errs.NewValueIsRequiredError("kitchen id"))
		} else {
			errList = append(errList, kitchenID.Validate())
		}
	}
	if next == "" {
		errList = append(errList, errs.NewValueIsRequiredError("new status"))
	}
	if elapsed < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("elapsed", elapsed, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	var kitchen *kernel.UUID
	if kind == SubjectSubOrder {
		k := *kitchenID
		kitchen = &k
	}

	return &Event{
		id:             id,
		subjectKind:    kind,
		subjectID:      subjectID,
		orderID:        orderID,
		kitchenID:      kitchen,
		previousStatus: previous,
		newStatus:      next,
		actorID:        actorID,
		occurredAt:     at.UTC(),
		notes:          notes,
		elapsed:        elapsed,
		critical:       critical,
	}, nil
}

func (e *Event) ID() kernel.UUID          { return e.id }
func (e *Event) SubjectKind() SubjectKind { return e.subjectKind }
func (e *Event) SubjectID() kernel.UUID   { return e.subjectID }
func (e *Event) OrderID() kernel.UUID     { return e.orderID }
func (e *Event) PreviousStatus() string   { return e.previousStatus }
func (e *Event) NewStatus() string        { return e.newStatus }
func (e *Event) ActorID() kernel.UUID     { return e.actorID }
func (e *Event) OccurredAt() time.Time    { return e.occurredAt }
func (e *Event) Notes() string            { return e.notes }
func (e *Event) Elapsed() time.Duration   { return e.elapsed }
func (e *Event) IsCritical() bool         { return e.critical }

// KitchenID is nil for order-level events.
func (e *Event) KitchenID() *kernel.UUID {
	if e.kitchenID == nil {
		return nil
	}
	k := *e.kitchenID
	return &k
}
