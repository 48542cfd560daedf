package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/fund"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func restoreFund(t *testing.T, clientID kernel.UUID, balance kernel.Amount, active bool) *fund.Fund {
	t.Helper()
	f, err := fund.RestoreFund(kernel.NewUUID(), clientID, balance, active, time.Now().Add(-24*time.Hour), 1)
	require.NoError(t, err)
	return f
}

func expectLedgerTx(uow *MockUoW, ctx any, attempts int) {
	uow.On("BeginSerializable", ctx).Return(nil).Times(attempts)
	uow.On("Rollback", ctx).Return(nil).Times(attempts)
}

func TestOpenFundCommandHandler_Handle(t *testing.T) {
	t.Run("should open a fund for a new client", func(t *testing.T) {
		ctx := t.Context()
		clientID := kernel.NewUUID()

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("GetByClient", ctx, clientID).Return(nil, errs.NewObjectNotFoundError("fund", clientID.String())).Once()
		uow.Funds.On("Add", ctx, mock.AnythingOfType("*fund.Fund")).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewOpenFundCommand(clientID)
		require.NoError(t, err)

		f, err := commands.NewOpenFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		require.True(t, f.IsActive())
		require.Equal(t, kernel.Amount(0), f.Balance())
		uow.AssertExpectations(t)
		uow.AssertRepositoryExpectations(t)
	})

	t.Run("should return the active fund instead of opening a second one", func(t *testing.T) {
		ctx := t.Context()
		existing := restoreFund(t, kernel.NewUUID(), 1_500, true)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("GetByClient", ctx, existing.ClientID()).Return(existing, nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewOpenFundCommand(existing.ClientID())
		require.NoError(t, err)

		f, err := commands.NewOpenFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		require.Same(t, existing, f)
		uow.Funds.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should open a new fund when the previous one is closed", func(t *testing.T) {
		ctx := t.Context()
		closed := restoreFund(t, kernel.NewUUID(), 0, false)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("GetByClient", ctx, closed.ClientID()).Return(closed, nil).Once()
		uow.Funds.On("Add", ctx, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewOpenFundCommand(closed.ClientID())
		require.NoError(t, err)

		f, err := commands.NewOpenFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		require.NotEqual(t, closed.ID(), f.ID())
	})
}

func TestCloseFundCommandHandler_Handle(t *testing.T) {
	t.Run("should close an active fund", func(t *testing.T) {
		ctx := t.Context()
		f := restoreFund(t, kernel.NewUUID(), 300, true)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("GetByClient", ctx, f.ClientID()).Return(f, nil).Once()
		uow.Funds.On("Update", ctx, f).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewCloseFundCommand(f.ClientID())
		require.NoError(t, err)

		got, err := commands.NewCloseFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		require.False(t, got.IsActive())
		uow.AssertRepositoryExpectations(t)
	})

	t.Run("should not write an already closed fund", func(t *testing.T) {
		ctx := t.Context()
		f := restoreFund(t, kernel.NewUUID(), 0, false)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("GetByClient", ctx, f.ClientID()).Return(f, nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewCloseFundCommand(f.ClientID())
		require.NoError(t, err)

		_, err = commands.NewCloseFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		uow.Funds.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCreditFundCommandHandler_Handle(t *testing.T) {
	t.Run("should credit the fund and record the movement", func(t *testing.T) {
		ctx := t.Context()
		f := restoreFund(t, kernel.NewUUID(), 200, true)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		mock.InOrder(
			uow.Funds.On("GetByClient", ctx, f.ClientID()).Return(f, nil).Once(),
			uow.Funds.On("Update", ctx, f).Return(nil).Once(),
			uow.Funds.On("AddMovement", ctx, mock.AnythingOfType("*fund.Movement")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
		)

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewCreditFundCommand(f.ClientID(), 800, " top-up ")
		require.NoError(t, err)

		m, err := commands.NewCreditFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		require.Equal(t, fund.Credit, m.Kind())
		require.Equal(t, kernel.Amount(200), m.BalanceBefore())
		require.Equal(t, kernel.Amount(1_000), m.BalanceAfter())
		require.Equal(t, "top-up", m.Note())
	})

	t.Run("should reject a credit to a closed fund", func(t *testing.T) {
		ctx := t.Context()
		f := restoreFund(t, kernel.NewUUID(), 0, false)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("GetByClient", ctx, f.ClientID()).Return(f, nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewCreditFundCommand(f.ClientID(), 800, "")
		require.NoError(t, err)

		_, err = commands.NewCreditFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrFundClosed)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject a non-positive amount at construction", func(t *testing.T) {
		_, err := commands.NewCreditFundCommand(kernel.NewUUID(), 0, "")
		require.Error(t, err)
	})
}

func TestDebitFundCommandHandler_Handle(t *testing.T) {
	t.Run("should debit the fund once per order", func(t *testing.T) {
		ctx := t.Context()
		f := restoreFund(t, kernel.NewUUID(), 1_000, true)
		orderID := kernel.NewUUID()

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("FindMovement", ctx, orderID, fund.Debit).
			Return(nil, errs.NewObjectNotFoundError("movement", orderID.String())).Once()
		uow.Funds.On("GetByClient", ctx, f.ClientID()).Return(f, nil).Once()
		uow.Funds.On("Update", ctx, f).Return(nil).Once()
		uow.Funds.On("AddMovement", ctx, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewDebitFundCommand(f.ClientID(), orderID, 400)
		require.NoError(t, err)

		m, err := commands.NewDebitFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		require.Equal(t, kernel.Amount(600), m.BalanceAfter())
		require.Equal(t, kernel.Amount(600), f.Balance())
		uow.AssertRepositoryExpectations(t)
	})

	t.Run("should return the existing debit for a repeated order", func(t *testing.T) {
		ctx := t.Context()
		f := restoreFund(t, kernel.NewUUID(), 1_000, true)
		orderID := kernel.NewUUID()
		previous, err := f.Debit(orderID, 400, time.Now())
		require.NoError(t, err)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("FindMovement", ctx, orderID, fund.Debit).Return(previous, nil).Once()
		uow.Funds.On("Get", ctx, f.ID()).Return(f, nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewDebitFundCommand(f.ClientID(), orderID, 400)
		require.NoError(t, err)

		m, err := commands.NewDebitFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		require.Same(t, previous, m)
		uow.Funds.AssertNotCalled(t, "GetByClient", mock.Anything, mock.Anything)
	})

	t.Run("should refuse a repeated order debited from another client's fund", func(t *testing.T) {
		ctx := t.Context()
		owner := restoreFund(t, kernel.NewUUID(), 1_000, true)
		orderID := kernel.NewUUID()
		previous, err := owner.Debit(orderID, 400, time.Now())
		require.NoError(t, err)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("FindMovement", ctx, orderID, fund.Debit).Return(previous, nil).Once()
		uow.Funds.On("Get", ctx, owner.ID()).Return(owner, nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewDebitFundCommand(kernel.NewUUID(), orderID, 400)
		require.NoError(t, err)

		m, err := commands.NewDebitFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.Nil(t, m)
		uow.Funds.AssertNotCalled(t, "AddMovement", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should fail with insufficient balance", func(t *testing.T) {
		ctx := t.Context()
		f := restoreFund(t, kernel.NewUUID(), 100, true)
		orderID := kernel.NewUUID()

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("FindMovement", ctx, orderID, fund.Debit).
			Return(nil, errs.NewObjectNotFoundError("movement", orderID.String())).Once()
		uow.Funds.On("GetByClient", ctx, f.ClientID()).Return(f, nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewDebitFundCommand(f.ClientID(), orderID, 400)
		require.NoError(t, err)

		_, err = commands.NewDebitFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrInsufficientBalance)
		require.Equal(t, kernel.Amount(100), f.Balance())
	})

	t.Run("should resolve a concurrent duplicate on retry", func(t *testing.T) {
		ctx := t.Context()
		clientID := kernel.NewUUID()
		orderID := kernel.NewUUID()
		stale := restoreFund(t, clientID, 1_000, true)
		winner := restoreFund(t, clientID, 1_000, true)
		committed, err := winner.Debit(orderID, 400, time.Now())
		require.NoError(t, err)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 2)
		uow.Funds.On("FindMovement", ctx, orderID, fund.Debit).
			Return(nil, errs.NewObjectNotFoundError("movement", orderID.String())).Once()
		uow.Funds.On("GetByClient", ctx, clientID).Return(stale, nil).Once()
		uow.Funds.On("Update", ctx, stale).Return(nil).Once()
		uow.Funds.On("AddMovement", ctx, mock.Anything).
			Return(errs.NewAlreadyExistsError("movement", orderID.String())).Once()
		uow.Funds.On("FindMovement", ctx, orderID, fund.Debit).Return(committed, nil).Once()
		uow.Funds.On("Get", ctx, winner.ID()).Return(winner, nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Twice()

		cmd, err := commands.NewDebitFundCommand(clientID, orderID, 400)
		require.NoError(t, err)

		m, err := commands.NewDebitFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		require.Same(t, committed, m)
		factory.AssertExpectations(t)
	})

	t.Run("should give up after the configured attempts", func(t *testing.T) {
		ctx := t.Context()
		clientID := kernel.NewUUID()
		orderID := kernel.NewUUID()

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 2)
		uow.Funds.On("FindMovement", ctx, orderID, fund.Debit).
			Return(nil, errs.NewObjectNotFoundError("movement", orderID.String())).Twice()
		uow.Funds.On("GetByClient", ctx, clientID).Return(restoreFund(t, clientID, 1_000, true), nil).Once()
		uow.Funds.On("GetByClient", ctx, clientID).Return(restoreFund(t, clientID, 1_000, true), nil).Once()
		uow.Funds.On("Update", ctx, mock.Anything).
			Return(errs.NewConcurrentModificationError("fund", clientID.String(), 1)).Twice()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Twice()

		cmd, err := commands.NewDebitFundCommand(clientID, orderID, 400)
		require.NoError(t, err)

		_, err = commands.NewDebitFundCommandHandler(factory, fastRetry(2), zap.NewNop()).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrConcurrentModification)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		uow.Funds.AssertNotCalled(t, "AddMovement", mock.Anything, mock.Anything)
	})
}

func TestRefundFundCommandHandler_Handle(t *testing.T) {
	t.Run("should refund the debit to the same fund", func(t *testing.T) {
		ctx := t.Context()
		f := restoreFund(t, kernel.NewUUID(), 1_000, true)
		orderID := kernel.NewUUID()
		debit, err := f.Debit(orderID, 400, time.Now())
		require.NoError(t, err)
		stored, err := fund.RestoreFund(f.ID(), f.ClientID(), 600, true, f.CreatedAt(), 2)
		require.NoError(t, err)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("FindMovement", ctx, orderID, fund.Refund).
			Return(nil, errs.NewObjectNotFoundError("movement", orderID.String())).Once()
		uow.Funds.On("FindMovement", ctx, orderID, fund.Debit).Return(debit, nil).Once()
		uow.Funds.On("Get", ctx, f.ID()).Return(stored, nil).Once()
		uow.Funds.On("Update", ctx, stored).Return(nil).Once()
		uow.Funds.On("AddMovement", ctx, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewRefundFundCommand(orderID)
		require.NoError(t, err)

		m, err := commands.NewRefundFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		require.Equal(t, fund.Refund, m.Kind())
		require.Equal(t, kernel.Amount(1_000), stored.Balance())
		uow.AssertRepositoryExpectations(t)
	})

	t.Run("should fail when the order was never debited", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		notFound := errs.NewObjectNotFoundError("movement", orderID.String())

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("FindMovement", ctx, orderID, fund.Refund).Return(nil, notFound).Once()
		uow.Funds.On("FindMovement", ctx, orderID, fund.Debit).Return(nil, notFound).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewRefundFundCommand(orderID)
		require.NoError(t, err)

		_, err = commands.NewRefundFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should return the existing refund", func(t *testing.T) {
		ctx := t.Context()
		f := restoreFund(t, kernel.NewUUID(), 1_000, true)
		orderID := kernel.NewUUID()
		debit, err := f.Debit(orderID, 400, time.Now())
		require.NoError(t, err)
		refund, err := f.Refund(debit, time.Now())
		require.NoError(t, err)

		uow := NewMockUoW()
		expectLedgerTx(uow, ctx, 1)
		uow.Funds.On("FindMovement", ctx, orderID, fund.Refund).Return(refund, nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		factory := NewMockLedgerUoWFactory(uow)
		factory.On("Create").Return().Once()

		cmd, err := commands.NewRefundFundCommand(orderID)
		require.NoError(t, err)

		m, err := commands.NewRefundFundCommandHandler(factory, fastRetry(3), zap.NewNop()).Handle(ctx, cmd)
		require.NoError(t, err)
		require.Same(t, refund, m)
	})
}
