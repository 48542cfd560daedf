package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPurgeAuditEventsCommandIsNotConstructed = errors.New(
	"PurgeAuditEventsCommand must be created via NewPurgeAuditEventsCommand constructor",
)

// PurgeAuditEventsCommand removes events older than a retention period.
// It is issued by the retention job, never by a user.
type PurgeAuditEventsCommand struct {
	retention time.Duration
	guard     guard.ConstructorGuard
}

func NewPurgeAuditEventsCommand(retention time.Duration) (PurgeAuditEventsCommand, error) {
	if retention <= 0 {
		return PurgeAuditEventsCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, "1ns", "unbounded")
	}
	return PurgeAuditEventsCommand{retention: retention, guard: guard.NewConstructorGuard()}, nil
}

func (c PurgeAuditEventsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeAuditEventsCommandIsNotConstructed)
}

func (c PurgeAuditEventsCommand) Retention() time.Duration { return c.retention }
