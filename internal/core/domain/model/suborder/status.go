package suborder

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a sub-order.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Created is the initial status: the kitchen has not seen the ticket yet.
	Created

	// Pending means a waiter confirmed the ticket with the table.
	Pending

	// InPreparation means a cook took the ticket.
	InPreparation

	// Ready means the dishes wait at the pass. Reaching it is critical.
	Ready

	// Delivered is terminal. Reaching it is critical.
	Delivered

	// Cancelled is terminal and always carries a reason.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Created:       "Created",
		Pending:       "Pending",
		InPreparation: "InPreparation",
		Ready:         "Ready",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

// getTransitionTable lists the allowed targets of every non-terminal status.
// Terminal statuses have no entry.
func getTransitionTable() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no targets
	return map[Status][]Status{
		Created:       {Pending, Cancelled},
		Pending:       {InPreparation, Cancelled},
		InPreparation: {Ready, Cancelled},
		Ready:         {Delivered},
	}
}

// ParseStatus reads the persisted or wire name of a status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsCritical marks the transitions operations staff watch: food at the pass
// and food at the table.
func (s Status) IsCritical() bool {
	return s == Ready || s == Delivered
}

// CanTransitionTo consults the transition table. It does not treat the same
// status as a transition; callers handle that as a no-op before asking.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitionTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
