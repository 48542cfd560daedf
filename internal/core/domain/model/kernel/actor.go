package kernel

import (
	"errors"
	"slices"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned for a zero-value Actor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

// Actor is the verified caller of an operation: a user id and the roles the
// auth gateway granted. The core never authenticates, it only reads roles.
type Actor struct {
	userID UUID
	roles  []Role
	guard  guard.ConstructorGuard
}

// NewActor validates the user id and every role. Duplicate roles are collapsed.
func NewActor(userID UUID, roles ...Role) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}

	unique := make([]Role, 0, len(roles))
	var roleErrs []error
	for _, r := range roles {
		if err := r.Validate(); err != nil {
			roleErrs = append(roleErrs, err)
			continue
		}
		if !slices.Contains(unique, r) {
			unique = append(unique, r)
		}
	}
	if err := errors.Join(roleErrs...); err != nil {
		return Actor{}, err
	}

	return Actor{
		userID: userID,
		roles:  unique,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) UserID() UUID {
	return a.userID
}

// Roles returns a copy of the granted roles.
func (a Actor) Roles() []Role {
	return slices.Clone(a.roles)
}

// HasAny reports whether the actor holds at least one of roles.
func (a Actor) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if slices.Contains(a.roles, r) {
			return true
		}
	}
	return false
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}
