package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the aggregate state of an order.
//
// It is a pure function of the sub-order statuses:
//
//	all Delivered                    -> Finalized
//	all Cancelled                    -> Cancelled
//	any sub-order beyond Created     -> InProgress
//	otherwise                        -> Created
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status: no sub-order has been confirmed yet.
	Created

	// InProgress means at least one sub-order has moved past Created.
	InProgress

	// Finalized means every sub-order was delivered. Terminal.
	Finalized

	// Cancelled means every sub-order was cancelled. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		InProgress: "InProgress",
		Finalized:  "Finalized",
		Cancelled:  "Cancelled",
	}
}

// ParseStatus reads the persisted name of a status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, InProgress, Finalized, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It is safe to call
// on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the order reached Finalized or Cancelled.
func (s Status) IsTerminal() bool {
	return s == Finalized || s == Cancelled
}
