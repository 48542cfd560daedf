package suborder

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is one menu line of a sub-order. Name, category and unit price are
// copied from the catalog at order time so later menu edits do not rewrite history.
type Item struct {
	menuItemID kernel.UUID
	name       string
	category   string
	quantity   int
	unitPrice  kernel.Amount
	total      kernel.Amount
	notes      string
}

func NewItem(
	menuItemID kernel.UUID,
	name, category string,
	quantity int,
	unitPrice kernel.Amount,
	notes string,
) (Item, error) {
	var errList []error
	if err := menuItemID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item name"))
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if err := unitPrice.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}
	total, err := unitPrice.Mul(quantity)
	if err != nil {
		return Item{}, err
	}

	return Item{
		menuItemID: menuItemID,
		name:       name,
		category:   category,
		quantity:   quantity,
		unitPrice:  unitPrice,
		total:      total,
		notes:      notes,
	}, nil
}

func (i Item) MenuItemID() kernel.UUID  { return i.menuItemID }
func (i Item) Name() string             { return i.name }
func (i Item) Category() string         { return i.category }
func (i Item) Quantity() int            { return i.quantity }
func (i Item) UnitPrice() kernel.Amount { return i.unitPrice }
func (i Item) Notes() string            { return i.notes }

// Total is unit price times quantity.
func (i Item) Total() kernel.Amount {
	return i.total
}
