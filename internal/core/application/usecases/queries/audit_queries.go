package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrFindAuditEventsQueryIsNotConstructed = errors.New(
		"FindAuditEventsQuery must be created via NewFindAuditEventsQuery constructor",
	)
	ErrCountOrderEventsQueryIsNotConstructed = errors.New(
		"CountOrderEventsQuery must be created via NewCountOrderEventsQuery constructor",
	)
	ErrGetKitchenLatencyQueryIsNotConstructed = errors.New(
		"GetKitchenLatencyQuery must be created via NewGetKitchenLatencyQuery constructor",
	)
)

// FindAuditEventsQuery searches the audit log. A zero filter returns the
// oldest audit.DefaultLimit events.
type FindAuditEventsQuery struct {
	filter audit.Filter
	guard  guard.ConstructorGuard
}

func NewFindAuditEventsQuery(filter audit.Filter) (FindAuditEventsQuery, error) {
	if err := filter.Validate(); err != nil {
		return FindAuditEventsQuery{}, err
	}
	if filter.From != nil {
		from := filter.From.UTC()
		filter.From = &from
	}
	if filter.To != nil {
		to := filter.To.UTC()
		filter.To = &to
	}
	return FindAuditEventsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q FindAuditEventsQuery) Validate() error {
	return q.guard.Validate(ErrFindAuditEventsQueryIsNotConstructed)
}

func (q FindAuditEventsQuery) Filter() audit.Filter { return q.filter }

// AuditEventView is an audit event as returned to callers. KitchenID is nil
// for order-level events.
type AuditEventView struct {
	ID             kernel.UUID
	SubjectKind    string
	SubjectID      kernel.UUID
	OrderID        kernel.UUID
	KitchenID      *kernel.UUID
	PreviousStatus string
	NewStatus      string
	ActorID        kernel.UUID
	OccurredAt     time.Time
	Notes          string
	Elapsed        time.Duration
	Critical       bool
}

type CountOrderEventsQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewCountOrderEventsQuery(orderID kernel.UUID) (CountOrderEventsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return CountOrderEventsQuery{}, err
	}
	return CountOrderEventsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q CountOrderEventsQuery) Validate() error {
	return q.guard.Validate(ErrCountOrderEventsQueryIsNotConstructed)
}

func (q CountOrderEventsQuery) OrderID() kernel.UUID { return q.orderID }

// GetKitchenLatencyQuery asks for the mean transition latency of one kitchen,
// or of every kitchen when built without an id.
type GetKitchenLatencyQuery struct {
	kitchenID *kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetKitchenLatencyQuery(kitchenID *kernel.UUID) (GetKitchenLatencyQuery, error) {
	q := GetKitchenLatencyQuery{guard: guard.NewConstructorGuard()}
	if kitchenID != nil {
		if err := kitchenID.Validate(); err != nil {
			return GetKitchenLatencyQuery{}, err
		}
		id := *kitchenID
		q.kitchenID = &id
	}
	return q, nil
}

func (q GetKitchenLatencyQuery) Validate() error {
	return q.guard.Validate(ErrGetKitchenLatencyQueryIsNotConstructed)
}

func (q GetKitchenLatencyQuery) KitchenID() *kernel.UUID { return q.kitchenID }
