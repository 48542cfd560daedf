package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionSubOrderCommandIsNotConstructed = errors.New(
	"TransitionSubOrderCommand must be created via NewTransitionSubOrderCommand constructor",
)

// TransitionSubOrderCommand asks to move a sub-order to a target status.
//
// The note is free text stored on the audit event; for cancellations it is
// the mandatory reason. ExpectedVersion, when set, is the version the actor
// saw: a newer stored version fails the command with
// errs.ConcurrentModificationError before anything is evaluated.
type TransitionSubOrderCommand struct { //nolint:recvcheck //using for validation
	subOrderID      kernel.UUID
	target          suborder.Status
	actor           kernel.Actor
	note            string
	expectedVersion *int

	guard guard.ConstructorGuard
}

// NewTransitionSubOrderCommand rejects a cancellation without a reason here,
// so it fails before any state is read.
func NewTransitionSubOrderCommand(
	subOrderID kernel.UUID,
	target suborder.Status,
	actor kernel.Actor,
	note string,
	expectedVersion *int,
) (TransitionSubOrderCommand, error) {
	cmd := TransitionSubOrderCommand{
		note:  strings.TrimSpace(note),
		guard: guard.NewConstructorGuard(),
	}

	var reasonErr error
	if target == suborder.Cancelled && cmd.note == "" {
		reasonErr = errs.NewValueIsRequiredError("cancel reason")
	}
	var versionErr error
	if expectedVersion != nil && *expectedVersion < suborder.InitialVersion {
		versionErr = errs.NewValueIsOutOfRangeError("expected version", *expectedVersion, suborder.InitialVersion, "unbounded")
	}
	_, actionErr := services.ActionFor(target)

	if err := errors.Join(subOrderID.Validate(), actionErr, actor.Validate(), reasonErr, versionErr); err != nil {
		return TransitionSubOrderCommand{}, err
	}

	cmd.subOrderID = subOrderID
	cmd.target = target
	cmd.actor = actor
	if expectedVersion != nil {
		v := *expectedVersion
		cmd.expectedVersion = &v
	}
	return cmd, nil
}

func (c TransitionSubOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionSubOrderCommandIsNotConstructed)
}

func (c TransitionSubOrderCommand) SubOrderID() kernel.UUID { return c.subOrderID }
func (c TransitionSubOrderCommand) Target() suborder.Status { return c.target }
func (c TransitionSubOrderCommand) Actor() kernel.Actor     { return c.actor }
func (c TransitionSubOrderCommand) Note() string            { return c.note }

// ExpectedVersion returns the version the actor based the request on, if any.
func (c TransitionSubOrderCommand) ExpectedVersion() (int, bool) {
	if c.expectedVersion == nil {
		return 0, false
	}
	return *c.expectedVersion, true
}
