package kitchen

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Type is the kind of preparation a kitchen performs.
type Type int

const (
	UnknownType Type = iota
	// Central is the general kitchen and the fallback for unmapped categories.
	Central
	// Confectionery prepares desserts, pastries, cakes and ice cream.
	Confectionery
	// Bar prepares beverages.
	Bar
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType:   "Unknown",
		Central:       "Central",
		Confectionery: "Confectionery",
		Bar:           "Bar",
	}
}

func ParseType(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if t != UnknownType && strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("kitchen type is invalid", fmt.Errorf("%q is not a valid kitchen type", s))
}

func (t Type) Validate() error {
	if t <= UnknownType || t > Bar {
		return errs.NewValueIsInvalidErrorWithCause("kitchen type is invalid", fmt.Errorf("%d is not a valid kitchen type", t))
	}
	return nil
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
