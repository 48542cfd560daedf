package audit

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Filter selects audit events. Zero fields do not constrain the result;
// From is inclusive and To exclusive.
type Filter struct {
	SubjectID    *kernel.UUID
	ActorID      *kernel.UUID
	From         *time.Time
	To           *time.Time
	CriticalOnly bool
	Limit        int
}

// DefaultLimit caps a query that sets no limit.
const DefaultLimit = 500

func (f Filter) Validate() error {
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return errs.NewValueIsInvalidError("period start must be before its end")
	}
	if f.Limit < 0 {
		return errs.NewValueIsOutOfRangeError("limit", f.Limit, 0, DefaultLimit)
	}
	return nil
}

// EffectiveLimit returns Limit, or DefaultLimit when unset or larger.
func (f Filter) EffectiveLimit() int {
	if f.Limit == 0 || f.Limit > DefaultLimit {
		return DefaultLimit
	}
	return f.Limit
}

// KitchenLatency is the mean processing time of sub-order transitions
// handled by one kitchen.
type KitchenLatency struct {
	KitchenID   kernel.UUID
	Transitions int
	Mean        time.Duration
}
