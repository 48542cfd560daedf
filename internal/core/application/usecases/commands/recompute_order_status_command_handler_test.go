package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecomputeOrderStatusCommandHandler_Handle(t *testing.T) {
	actor := mustActor(kernel.RoleManager)

	t.Run("should persist a changed status with one order event", func(t *testing.T) {
		ctx := t.Context()
		o := restoreOrder(t, order.Created)
		subOrders := []*suborder.SubOrder{
			restoreSubOrder(t, o.ID(), suborder.Pending, 2),
			restoreSubOrder(t, o.ID(), suborder.Created, 1),
		}

		uow := NewMockUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.Orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		uow.SubOrders.On("ListByOrder", ctx, o.ID()).Return(subOrders, nil).Once()
		uow.Orders.On("Update", ctx, o).Return(nil).Once()
		uow.Events.On("Append", ctx, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := NewMockUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewRecomputeOrderStatusCommand(o.ID(), actor)
		require.NoError(t, err)

		status, err := commands.NewRecomputeOrderStatusCommandHandler(factory).Handle(ctx, cmd)
		require.NoError(t, err)
		require.Equal(t, order.InProgress, status)
		uow.AssertExpectations(t)
		uow.AssertRepositoryExpectations(t)
	})

	t.Run("should not write an unchanged status", func(t *testing.T) {
		ctx := t.Context()
		o := restoreOrder(t, order.InProgress)
		subOrders := []*suborder.SubOrder{
			restoreSubOrder(t, o.ID(), suborder.Delivered, 5),
			restoreSubOrder(t, o.ID(), suborder.Cancelled, 2),
		}

		uow := NewMockUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.Orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		uow.SubOrders.On("ListByOrder", ctx, o.ID()).Return(subOrders, nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := NewMockUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewRecomputeOrderStatusCommand(o.ID(), actor)
		require.NoError(t, err)

		status, err := commands.NewRecomputeOrderStatusCommandHandler(factory).Handle(ctx, cmd)
		require.NoError(t, err)
		require.Equal(t, order.InProgress, status)
		uow.Orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.Events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("should fail for unknown order", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()

		uow := NewMockUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.Orders.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := NewMockUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewRecomputeOrderStatusCommand(id, actor)
		require.NoError(t, err)

		_, err = commands.NewRecomputeOrderStatusCommandHandler(factory).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
