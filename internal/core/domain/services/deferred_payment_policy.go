package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// DeferredPaymentPolicy decides whether an order may be created without
// paying upfront. It is loaded from configuration at startup and passed to
// the order handler; nothing reads it from global state.
type DeferredPaymentPolicy struct {
	Enabled        bool
	DefaultCeiling kernel.Amount
	Ceilings       map[kernel.UUID]kernel.Amount
}

// CeilingFor returns the serving unit's ceiling, or the default one.
func (p DeferredPaymentPolicy) CeilingFor(servingUnitID kernel.UUID) kernel.Amount {
	if c, ok := p.Ceilings[servingUnitID]; ok {
		return c
	}
	return p.DefaultCeiling
}

// Check accepts a deferred order whose total is at or under the ceiling.
func (p DeferredPaymentPolicy) Check(servingUnitID kernel.UUID, total kernel.Amount) error {
	if !p.Enabled {
		return errs.NewDeferredPaymentNotAllowedError(servingUnitID.String(), total.Int64(), -1)
	}
	ceiling := p.CeilingFor(servingUnitID)
	if ceiling.LessThan(total) {
		return errs.NewDeferredPaymentNotAllowedError(servingUnitID.String(), total.Int64(), ceiling.Int64())
	}
	return nil
}
