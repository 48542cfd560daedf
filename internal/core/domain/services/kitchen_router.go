package services

import (
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/pkg/errs"
)

// getCategoryTypes maps menu categories to the kitchen type preparing them.
// Categories missing here go to the central kitchen.
func getCategoryTypes() map[string]kitchen.Type {
	return map[string]kitchen.Type{
		"dessert":                kitchen.Confectionery,
		"pastry":                 kitchen.Confectionery,
		"cake":                   kitchen.Confectionery,
		"ice_cream":              kitchen.Confectionery,
		"alcoholic_beverage":     kitchen.Bar,
		"non_alcoholic_beverage": kitchen.Bar,
	}
}

// TypeForCategory returns the kitchen type for a menu category. Matching
// ignores case and surrounding spaces.
func TypeForCategory(category string) kitchen.Type {
	if t, ok := getCategoryTypes()[strings.ToLower(strings.TrimSpace(category))]; ok {
		return t
	}
	return kitchen.Central
}

// Route is the result of a routing decision.
type Route struct {
	Kitchen *kitchen.Kitchen
	Type    kitchen.Type

	// Degraded is set when no kitchen of the type serves the requested unit
	// and one from elsewhere was picked. Callers log it.
	Degraded bool
}

// KitchenRouter selects the least-loaded active kitchen for a category.
//
// Selection rules:
//   - only active kitchens of TypeForCategory(category) are candidates
//   - kitchens linked to the serving unit win over the rest
//   - among candidates, fewest active sub-orders, then lowest id
//
// Example usage:
//
//	router := services.NewKitchenRouter()
//	kitchens, _ := repo.FindActiveByType(ctx, services.TypeForCategory("dessert"))
//	route, err := router.Route("dessert", servingUnitID, kitchens)
//	if errors.Is(err, errs.ErrNoCapableResource) {
//	    // nothing can prepare desserts right now
//	}
type KitchenRouter struct{}

func NewKitchenRouter() KitchenRouter {
	return KitchenRouter{}
}

// Route picks a kitchen among candidates. Inactive candidates and candidates
// of another type are ignored, so callers may pass a wider list.
func (r KitchenRouter) Route(category string, servingUnitID kernel.UUID, candidates []*kitchen.Kitchen) (Route, error) {
	kind := TypeForCategory(category)
	if err := servingUnitID.Validate(); err != nil {
		return Route{}, err
	}

	var local, global *kitchen.Kitchen
	for _, k := range candidates {
		if err := k.Validate(); err != nil {
			return Route{}, err
		}
		if !k.IsActive() || k.Type() != kind {
			continue
		}
		if global == nil || k.IsLessLoadedThan(global) {
			global = k
		}
		if k.Serves(servingUnitID) && (local == nil || k.IsLessLoadedThan(local)) {
			local = k
		}
	}

	switch {
	case local != nil:
		return Route{Kitchen: local, Type: kind}, nil
	case global != nil:
		return Route{Kitchen: global, Type: kind, Degraded: true}, nil
	default:
		return Route{}, errs.NewNoCapableResourceError(kind.String(), servingUnitID.String())
	}
}
