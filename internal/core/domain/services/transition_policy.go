package services

import (
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/pkg/errs"
)

// Action is an operation an actor performs on a sub-order or on reference data.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionDeliver  Action = "deliver"
	ActionCancel   Action = "cancel"

	// ActionManageKitchens covers registering and (de)activating kitchens.
	ActionManageKitchens Action = "manage kitchens"
)

func getRequiredRoles() map[Action][]kernel.Role {
	return map[Action][]kernel.Role{
		ActionConfirm:        {kernel.RoleWaiter},
		ActionDeliver:        {kernel.RoleWaiter},
		ActionStart:          {kernel.RoleCook},
		ActionComplete:       {kernel.RoleCook},
		ActionCancel:         {kernel.RoleManager},
		ActionManageKitchens: {kernel.RoleManager},
	}
}

// ActionFor names the action that moves a sub-order into target.
func ActionFor(target suborder.Status) (Action, error) {
	switch target { //nolint:exhaustive // Created and Unknown are never targets
	case suborder.Pending:
		return ActionConfirm, nil
	case suborder.InPreparation:
		return ActionStart, nil
	case suborder.Ready:
		return ActionComplete, nil
	case suborder.Delivered:
		return ActionDeliver, nil
	case suborder.Cancelled:
		return ActionCancel, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("target status is invalid",
			fmt.Errorf("%s is not a transition target", target))
	}
}

// TransitionPolicy is the explicit capability check run before any read of
// the data an action touches. Roles do not imply each other: a manager who
// also delivers plates needs the waiter role too.
type TransitionPolicy struct{}

func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// Allowed reports whether any of roles may perform action.
func (p TransitionPolicy) Allowed(action Action, roles []kernel.Role) bool {
	for _, required := range getRequiredRoles()[action] {
		if slices.Contains(roles, required) {
			return true
		}
	}
	return false
}

// Authorize returns errs.PermissionDeniedError when actor may not perform action.
func (p TransitionPolicy) Authorize(actor kernel.Actor, action Action) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if p.Allowed(action, actor.Roles()) {
		return nil
	}

	required := getRequiredRoles()[action]
	names := make([]string, 0, len(required))
	for _, r := range required {
		names = append(names, r.String())
	}
	return errs.NewPermissionDeniedError(actor.UserID().String(), string(action), names...)
}
