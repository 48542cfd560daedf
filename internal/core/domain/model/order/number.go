package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var numberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)

// NewNumber derives the human-readable number of an order from its id and
// creation date, e.g. ORD-20250314-550E8400. The suffix is the first eight
// hex digits of the id; uniqueness is enforced by the store.
func NewNumber(id kernel.UUID, createdAt time.Time) string {
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return fmt.Sprintf("ORD-%s-%s", createdAt.UTC().Format("20060102"), hex[:8])
}

// ValidateNumber checks the ORD-YYYYMMDD-XXXXXXXX shape.
func ValidateNumber(number string) error {
	if !numberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("order number is invalid", fmt.Errorf("%q does not match ORD-YYYYMMDD-XXXXXXXX", number))
	}
	return nil
}
