package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Created))
		assert.Equal(t, 2, int(order.InProgress))
		assert.Equal(t, 3, int(order.Finalized))
		assert.Equal(t, 4, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Created, order.InProgress, order.Finalized, order.Cancelled} {
			t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(5), order.Status(100)} {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "status is invalid")
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return correct string for valid statuses", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Created, "Created"},
			{order.InProgress, "InProgress"},
			{order.Finalized, "Finalized"},
			{order.Cancelled, "Cancelled"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())

			parsed, err := order.ParseStatus(tc.expected)
			require.NoError(t, err)
			assert.Equal(t, tc.status, parsed)
		}
	})

	t.Run("should return Unknown for invalid statuses", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Created.IsTerminal())
	assert.False(t, order.InProgress.IsTerminal())
	assert.True(t, order.Finalized.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}

func TestParsePaymentMode(t *testing.T) {
	t.Run("should parse known modes", func(t *testing.T) {
		m, err := order.ParsePaymentMode("Prepaid")

		require.NoError(t, err)
		assert.Equal(t, order.Prepaid, m)
	})

	t.Run("should reject unknown modes", func(t *testing.T) {
		_, err := order.ParsePaymentMode("barter")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), `"barter" is not a valid payment mode`)
	})
}
