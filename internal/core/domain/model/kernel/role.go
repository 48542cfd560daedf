package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Role is a capability granted to an actor by the auth gateway.
type Role string

const (
	// RoleWaiter is the front-of-house role: confirms and delivers sub-orders.
	RoleWaiter Role = "waiter"
	// RoleCook is the kitchen role: starts and completes preparation.
	RoleCook Role = "cook"
	// RoleManager cancels sub-orders and administers kitchens and funds.
	RoleManager Role = "manager"
)

func getValidRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleWaiter:  {},
		RoleCook:    {},
		RoleManager: {},
	}
}

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	if _, ok := getValidRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a known role", string(r)))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}
