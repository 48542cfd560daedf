package suborder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrSubOrderIsNotConstructed is returned for a SubOrder that bypassed
// NewSubOrder or RestoreSubOrder.
var ErrSubOrderIsNotConstructed = errors.New("SubOrder must be created via NewSubOrder constructor")

// InitialVersion is the version of a freshly created sub-order.
const InitialVersion = 1

// Milestones holds the lifecycle timestamps. A nil field means the
// milestone was never reached.
type Milestones struct {
	ConfirmedAt *time.Time
	StartedAt   *time.Time
	ReadyAt     *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// SubOrder is the part of an order prepared by a single kitchen.
//
// Invariants:
//   - belongs to exactly one order, one kitchen and one serving unit
//   - holds at least one item; total is the sum of item totals
//   - status only moves along the transition table
//   - version grows by exactly one per persisted mutation
//
// Relations to the order and the kitchen are plain ids resolved through
// repositories, never object pointers.
type SubOrder struct {
	id            kernel.UUID
	orderID       kernel.UUID
	kitchenID     kernel.UUID
	servingUnitID kernel.UUID
	position      int
	status        Status
	items         []Item
	total         kernel.Amount
	createdAt     time.Time
	milestones    Milestones
	cancelReason  string

	// version is the current value; baseVersion is the value loaded from
	// storage and is what the repository compares against on update.
	version     int
	baseVersion int

	guard guard.ConstructorGuard
}

// NewSubOrder creates a sub-order in Created status with version 1.
func NewSubOrder(
	id, orderID, kitchenID, servingUnitID kernel.UUID,
	position int,
	items []Item,
	now time.Time,
) (*SubOrder, error) {
	s := &SubOrder{
		status:      Created,
		createdAt:   now.UTC(),
		version:     InitialVersion,
		baseVersion: InitialVersion,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setIDs(id, orderID, kitchenID, servingUnitID),
		s.setPosition(position),
		s.setItems(items),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSubOrder rebuilds a persisted sub-order. It performs the same
// validation as NewSubOrder and keeps the stored version as the base for the
// next optimistic update.
func RestoreSubOrder(
	id, orderID, kitchenID, servingUnitID kernel.UUID,
	position int,
	status Status,
	items []Item,
	createdAt time.Time,
	milestones Milestones,
	cancelReason string,
	version int,
) (*SubOrder, error) {
	s := &SubOrder{
		createdAt:    createdAt.UTC(),
		milestones:   milestones,
		cancelReason: cancelReason,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setIDs(id, orderID, kitchenID, servingUnitID),
		s.setPosition(position),
		s.setItems(items),
		s.setStatus(status),
		s.setVersion(version),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *SubOrder) Validate() error {
	if s == nil {
		return ErrSubOrderIsNotConstructed
	}
	return s.guard.Validate(ErrSubOrderIsNotConstructed)
}

func (s *SubOrder) IsEqual(other *SubOrder) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *SubOrder) ID() kernel.UUID            { return s.id }
func (s *SubOrder) OrderID() kernel.UUID       { return s.orderID }
func (s *SubOrder) KitchenID() kernel.UUID     { return s.kitchenID }
func (s *SubOrder) ServingUnitID() kernel.UUID { return s.servingUnitID }
func (s *SubOrder) Position() int              { return s.position }
func (s *SubOrder) Status() Status             { return s.status }
func (s *SubOrder) Total() kernel.Amount       { return s.total }
func (s *SubOrder) CreatedAt() time.Time       { return s.createdAt }
func (s *SubOrder) Milestones() Milestones     { return s.milestones }
func (s *SubOrder) CancelReason() string       { return s.cancelReason }
func (s *SubOrder) Version() int               { return s.version }
func (s *SubOrder) BaseVersion() int           { return s.baseVersion }

// Items returns a copy of the item list.
func (s *SubOrder) Items() []Item {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Transition moves the sub-order to target and stamps the milestone at now.
//
// It reports changed=false without touching anything when target is the
// current status. A target outside the transition table fails with
// errs.InvalidTransitionError; cancelling requires a non-blank reason.
// Role checks are not part of the aggregate, see services.TransitionPolicy.
func (s *SubOrder) Transition(target Status, reason string, now time.Time) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if target == s.status {
		return false, nil
	}
	if !s.status.CanTransitionTo(target) {
		return false, errs.NewInvalidTransitionError("sub-order "+s.id.String(), s.status.String(), target.String())
	}
	if target == Cancelled && strings.TrimSpace(reason) == "" {
		return false, errs.NewValueIsRequiredError("cancel reason")
	}

	at := now.UTC()
	switch target { //nolint:exhaustive // Created and Unknown are never targets
	case Pending:
		s.milestones.ConfirmedAt = &at
	case InPreparation:
		s.milestones.StartedAt = &at
	case Ready:
		s.milestones.ReadyAt = &at
	case Delivered:
		s.milestones.DeliveredAt = &at
	case Cancelled:
		s.milestones.CancelledAt = &at
		s.cancelReason = strings.TrimSpace(reason)
	}

	s.status = target
	s.touch()
	return true, nil
}

// touch bumps the version once per unit of work, however many mutations it carries.
func (s *SubOrder) touch() {
	if s.version == s.baseVersion {
		s.version++
	}
}

func (s *SubOrder) setIDs(id, orderID, kitchenID, servingUnitID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		kitchenID.Validate(),
		servingUnitID.Validate(),
	); err != nil {
		return err
	}
	s.id = id
	s.orderID = orderID
	s.kitchenID = kitchenID
	s.servingUnitID = servingUnitID
	return nil
}

func (s *SubOrder) setPosition(position int) error {
	if position < 0 {
		return errs.NewValueIsInvalidErrorWithCause("position is invalid", fmt.Errorf("%d is negative", position))
	}
	s.position = position
	return nil
}

func (s *SubOrder) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	s.items = make([]Item, len(items))
	copy(s.items, items)

	var total kernel.Amount
	for _, it := range items {
		sum, err := total.Add(it.Total())
		if err != nil {
			return err
		}
		total = sum
	}
	s.total = total
	return nil
}

func (s *SubOrder) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *SubOrder) setVersion(version int) error {
	if version < InitialVersion {
		return errs.NewValueIsOutOfRangeError("version", version, InitialVersion, "unbounded")
	}
	s.version = version
	s.baseVersion = version
	return nil
}
