package kitchen

import (
	"errors"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrKitchenIsNotConstructed is returned for a Kitchen that bypassed its constructors.
var ErrKitchenIsNotConstructed = errors.New("Kitchen must be created via NewKitchen constructor")

// Kitchen is a preparation resource. It may serve several serving units.
//
// activeSubOrders is a load counter maintained by the store with atomic
// increments; the value held here is the snapshot read with the kitchen and
// is only used to rank routing candidates.
type Kitchen struct {
	id              kernel.UUID
	name            string
	kind            Type
	active          bool
	activeSubOrders int
	servingUnitIDs  []kernel.UUID
	guard           guard.ConstructorGuard
}

// NewKitchen registers an active kitchen with no load.
func NewKitchen(id kernel.UUID, name string, kind Type, servingUnitIDs []kernel.UUID) (*Kitchen, error) {
	return RestoreKitchen(id, name, kind, true, 0, servingUnitIDs)
}

func RestoreKitchen(
	id kernel.UUID,
	name string,
	kind Type,
	active bool,
	activeSubOrders int,
	servingUnitIDs []kernel.UUID,
) (*Kitchen, error) {
	k := &Kitchen{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		k.setID(id),
		k.setName(name),
		k.setType(kind),
		k.setActiveSubOrders(activeSubOrders),
		k.setServingUnits(servingUnitIDs),
	); err != nil {
		return nil, err
	}

	return k, nil
}

func (k *Kitchen) Validate() error {
	if k == nil {
		return ErrKitchenIsNotConstructed
	}
	return k.guard.Validate(ErrKitchenIsNotConstructed)
}

func (k *Kitchen) ID() kernel.UUID      { return k.id }
func (k *Kitchen) Name() string         { return k.name }
func (k *Kitchen) Type() Type           { return k.kind }
func (k *Kitchen) IsActive() bool       { return k.active }
func (k *Kitchen) ActiveSubOrders() int { return k.activeSubOrders }

func (k *Kitchen) ServingUnitIDs() []kernel.UUID {
	return slices.Clone(k.servingUnitIDs)
}

// Serves reports whether the kitchen is linked to the serving unit.
func (k *Kitchen) Serves(servingUnitID kernel.UUID) bool {
	return slices.ContainsFunc(k.servingUnitIDs, servingUnitID.IsEqual)
}

// IsLessLoadedThan ranks routing candidates: fewer active sub-orders first,
// then the lowest id so the choice never depends on read order.
func (k *Kitchen) IsLessLoadedThan(other *Kitchen) bool {
	if k.activeSubOrders != other.activeSubOrders {
		return k.activeSubOrders < other.activeSubOrders
	}
	return k.id.Compare(other.id) < 0
}

func (k *Kitchen) Activate() {
	k.active = true
}

// Deactivate takes the kitchen out of routing. Sub-orders already assigned
// to it keep progressing.
func (k *Kitchen) Deactivate() {
	k.active = false
}

func (k *Kitchen) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	k.id = id
	return nil
}

func (k *Kitchen) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("kitchen name")
	}
	k.name = name
	return nil
}

func (k *Kitchen) setType(kind Type) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	k.kind = kind
	return nil
}

func (k *Kitchen) setActiveSubOrders(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("active sub-orders", n, 0, "unbounded")
	}
	k.activeSubOrders = n
	return nil
}

func (k *Kitchen) setServingUnits(ids []kernel.UUID) error {
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if !slices.ContainsFunc(unique, id.IsEqual) {
			unique = append(unique, id)
		}
	}
	k.servingUnitIDs = unique
	return nil
}
