package kitchenrepo_test

import (
	"testing"

	"fulfillment/internal/adapters/out/postgres/kitchenrepo"
	"fulfillment/internal/adapters/out/postgres/storetest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKitchen(t *testing.T, name string, kind kitchen.Type, units ...kernel.UUID) *kitchen.Kitchen {
	t.Helper()
	k, err := kitchen.NewKitchen(kernel.NewUUID(), name, kind, units)
	require.NoError(t, err)
	return k
}

func TestGormKitchenRepository(t *testing.T) {
	t.Run("should round-trip a kitchen with its serving units", func(t *testing.T) {
		ctx := t.Context()
		repo := kitchenrepo.NewGormKitchenRepository(storetest.NewDB(t))

		unitA, unitB := kernel.NewUUID(), kernel.NewUUID()
		k := newKitchen(t, "Main line", kitchen.Central, unitA, unitB)
		require.NoError(t, repo.Add(ctx, k))

		got, err := repo.Get(ctx, k.ID())
		require.NoError(t, err)
		assert.Equal(t, "Main line", got.Name())
		assert.Equal(t, kitchen.Central, got.Type())
		assert.True(t, got.IsActive())
		assert.True(t, got.Serves(unitA))
		assert.True(t, got.Serves(unitB))
		assert.Len(t, got.ServingUnitIDs(), 2)
	})

	t.Run("should find only active kitchens of the requested type", func(t *testing.T) {
		ctx := t.Context()
		repo := kitchenrepo.NewGormKitchenRepository(storetest.NewDB(t))

		unit := kernel.NewUUID()
		hot := newKitchen(t, "Grill", kitchen.Central, unit)
		closed := newKitchen(t, "Wok", kitchen.Central, unit)
		bar := newKitchen(t, "Bar", kitchen.Bar, unit)
		for _, k := range []*kitchen.Kitchen{hot, closed, bar} {
			require.NoError(t, repo.Add(ctx, k))
		}
		closed.Deactivate()
		require.NoError(t, repo.Update(ctx, closed))

		got, err := repo.FindActiveByType(ctx, kitchen.Central)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, hot.ID(), got[0].ID())
		assert.True(t, got[0].Serves(unit))
	})

	t.Run("should adjust the load without going below zero", func(t *testing.T) {
		ctx := t.Context()
		repo := kitchenrepo.NewGormKitchenRepository(storetest.NewDB(t))

		k := newKitchen(t, "Pastry", kitchen.Confectionery, kernel.NewUUID())
		require.NoError(t, repo.Add(ctx, k))

		require.NoError(t, repo.AdjustLoad(ctx, k.ID(), 2))
		got, err := repo.Get(ctx, k.ID())
		require.NoError(t, err)
		assert.Equal(t, 2, got.ActiveSubOrders())

		require.NoError(t, repo.AdjustLoad(ctx, k.ID(), -5))
		got, err = repo.Get(ctx, k.ID())
		require.NoError(t, err)
		assert.Equal(t, 0, got.ActiveSubOrders())
	})

	t.Run("should not overwrite the load from a stale snapshot", func(t *testing.T) {
		ctx := t.Context()
		repo := kitchenrepo.NewGormKitchenRepository(storetest.NewDB(t))

		k := newKitchen(t, "Cold", kitchen.Central, kernel.NewUUID())
		require.NoError(t, repo.Add(ctx, k))
		require.NoError(t, repo.AdjustLoad(ctx, k.ID(), 3))

		k.Deactivate()
		require.NoError(t, repo.Update(ctx, k))

		got, err := repo.Get(ctx, k.ID())
		require.NoError(t, err)
		assert.False(t, got.IsActive())
		assert.Equal(t, 3, got.ActiveSubOrders())
	})

	t.Run("should report a missing kitchen", func(t *testing.T) {
		ctx := t.Context()
		repo := kitchenrepo.NewGormKitchenRepository(storetest.NewDB(t))

		_, err := repo.Get(ctx, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		err = repo.AdjustLoad(ctx, kernel.NewUUID(), 1)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
