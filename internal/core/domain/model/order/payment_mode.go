package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// PaymentMode tells how an order is settled.
type PaymentMode string

const (
	// Prepaid orders are debited from the client's fund when created.
	Prepaid PaymentMode = "prepaid"
	// Deferred orders are settled later by the payment gateway. They are
	// subject to the deferred-payment feature flag and a per-unit ceiling.
	Deferred PaymentMode = "deferred"
)

func ParsePaymentMode(s string) (PaymentMode, error) {
	m := PaymentMode(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMode) Validate() error {
	if m != Prepaid && m != Deferred {
		return errs.NewValueIsInvalidErrorWithCause("payment mode is invalid", fmt.Errorf("%q is not a valid payment mode", string(m)))
	}
	return nil
}

func (m PaymentMode) String() string {
	return string(m)
}
