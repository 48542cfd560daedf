package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionFor(t *testing.T) {
	expected := map[suborder.Status]services.Action{
		suborder.Pending:       services.ActionConfirm,
		suborder.InPreparation: services.ActionStart,
		suborder.Ready:         services.ActionComplete,
		suborder.Delivered:     services.ActionDeliver,
		suborder.Cancelled:     services.ActionCancel,
	}
	for target, action := range expected {
		got, err := services.ActionFor(target)

		require.NoError(t, err)
		assert.Equal(t, action, got)
	}

	_, err := services.ActionFor(suborder.Created)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTransitionPolicy_Allowed(t *testing.T) {
	policy := services.NewTransitionPolicy()
	waiter := []kernel.Role{kernel.RoleWaiter}
	cook := []kernel.Role{kernel.RoleCook}
	manager := []kernel.Role{kernel.RoleManager}

	testCases := []struct {
		action services.Action
		roles  []kernel.Role
		want   bool
	}{
		{services.ActionConfirm, waiter, true},
		{services.ActionConfirm, cook, false},
		{services.ActionDeliver, waiter, true},
		{services.ActionDeliver, manager, false},
		{services.ActionStart, cook, true},
		{services.ActionStart, waiter, false},
		{services.ActionComplete, cook, true},
		{services.ActionCancel, manager, true},
		{services.ActionCancel, append(waiter, kernel.RoleCook), false},
		{services.ActionManageKitchens, manager, true},
		{services.Action("unknown"), manager, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, policy.Allowed(tc.action, tc.roles), "%s with %v", tc.action, tc.roles)
	}
}

func TestTransitionPolicy_Authorize(t *testing.T) {
	policy := services.NewTransitionPolicy()

	t.Run("should allow a cook to start preparation", func(t *testing.T) {
		cook, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleCook)

		require.NoError(t, policy.Authorize(cook, services.ActionStart))
	})

	t.Run("should deny a waiter cancelling", func(t *testing.T) {
		waiter, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleWaiter)

		err := policy.Authorize(waiter, services.ActionCancel)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Contains(t, err.Error(), "may not cancel (requires one of: manager)")
	})

	t.Run("should reject a zero actor", func(t *testing.T) {
		err := policy.Authorize(kernel.Actor{}, services.ActionConfirm)

		require.ErrorIs(t, err, kernel.ErrActorIsNotConstructed)
	})
}
