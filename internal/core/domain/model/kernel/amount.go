package kernel

import (
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
)

// Amount is a sum of money in minor units (cents). Money never travels as a float.
type Amount int64

// MaxAmount is the largest representable sum.
const MaxAmount Amount = math.MaxInt64

// NewAmount rejects negative sums.
func NewAmount(minor int64) (Amount, error) {
	a := Amount(minor)
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return a, nil
}

// Validate checks that the amount is not negative.
func (a Amount) Validate() error {
	if a < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid", fmt.Errorf("%d is negative", a))
	}
	return nil
}

// ValidatePositive is used by ledger movements, which cannot carry a zero amount.
func (a Amount) ValidatePositive() error {
	if a <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid", fmt.Errorf("%d is not greater than 0", a))
	}
	return nil
}

// Add fails with errs.ValueIsOutOfRangeError instead of wrapping around.
func (a Amount) Add(other Amount) (Amount, error) {
	if (other > 0 && a > MaxAmount-other) || (other < 0 && a < math.MinInt64-other) {
		return 0, errs.NewValueIsOutOfRangeError("amount", fmt.Sprintf("%d + %d", a, other), int64(math.MinInt64), int64(MaxAmount))
	}
	return a + other, nil
}

func (a Amount) Sub(other Amount) Amount {
	return a - other
}

// Mul multiplies a unit price by a quantity. Like Add it refuses to overflow.
func (a Amount) Mul(quantity int) (Amount, error) {
	if a == 0 || quantity == 0 {
		return 0, nil
	}
	q := Amount(quantity)
	r := a * q
	if r/q != a || (a == -1 && q == math.MinInt64) || (q == -1 && a == math.MinInt64) {
		return 0, errs.NewValueIsOutOfRangeError("amount", fmt.Sprintf("%d * %d", a, quantity), int64(math.MinInt64), int64(MaxAmount))
	}
	return r, nil
}

func (a Amount) LessThan(other Amount) bool {
	return a < other
}

func (a Amount) Int64() int64 {
	return int64(a)
}

// String renders the amount with two decimals, e.g. 1250 -> "12.50".
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
