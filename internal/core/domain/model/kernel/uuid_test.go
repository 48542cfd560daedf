package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.NotEqual(t, uuid.Nil.String(), id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})
}

func TestUUIDFromString(t *testing.T) {
	canonical := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should accept supported notations", func(t *testing.T) {
		for _, input := range []string{
			canonical,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, input)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", "zzze8400-e29b-41d4-a716-446655440000"} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should create UUID from valid bytes", func(t *testing.T) {
		raw := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

		id, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.Equal(t, raw.String(), id.String())
	})

	t.Run("should return error for invalid byte length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestMustUUID(t *testing.T) {
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", kernel.MustUUID("550e8400-e29b-41d4-a716-446655440000").String())
	assert.Panics(t, func() { kernel.MustUUID("nope") })
}

func TestUUID_Compare(t *testing.T) {
	low := kernel.MustUUID("00000000-0000-0000-0000-000000000001")
	high := kernel.MustUUID("ffffffff-0000-0000-0000-000000000000")

	assert.Negative(t, low.Compare(high))
	assert.Positive(t, high.Compare(low))
	assert.Zero(t, low.Compare(low))
}

func TestUUID_Validate(t *testing.T) {
	t.Run("should return error for zero value UUID", func(t *testing.T) {
		var id kernel.UUID

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})

	t.Run("should return error for parsed nil UUID", func(t *testing.T) {
		id, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUID_Immutability(t *testing.T) {
	original := kernel.NewUUID()
	originalString := original.String()

	raw := original.Bytes()
	for i := range raw {
		raw[i] = 0xFF
	}

	assert.Equal(t, originalString, original.String())
}
