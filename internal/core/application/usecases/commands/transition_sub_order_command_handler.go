package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"go.uber.org/zap"
)

// TransitionSubOrderCommandHandler runs one sub-order transition as a single
// unit of work:
//
//  1. capability check of the actor's roles against the action
//  2. load the sub-order; a stale ExpectedVersion fails with ConcurrentModificationError
//  3. same status: return unchanged, no write, no event, no aggregation
//  4. transition table check and milestone stamp
//  5. version-gated update (a lost race fails with ConcurrentModificationError)
//  6. sub-order audit event, critical when reaching Ready or Delivered
//  7. kitchen load decrement on reaching a terminal status
//  8. order status recomputation under the order row lock
//
// Failures at any step roll everything back.
type TransitionSubOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
	logger     *zap.Logger
}

func NewTransitionSubOrderCommandHandler(uowFactory UoWFactory, logger *zap.Logger) *TransitionSubOrderCommandHandler {
	return &TransitionSubOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
		logger:     logger,
	}
}

// Handle returns the sub-order as persisted after the command.
func (h *TransitionSubOrderCommandHandler) Handle(ctx context.Context, cmd TransitionSubOrderCommand) (*suborder.SubOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	action, err := services.ActionFor(cmd.Target())
	if err != nil {
		return nil, err
	}
	if err = h.policy.Authorize(cmd.Actor(), action); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	subOrderRepo := uow.SubOrderRepository()
	s, err := subOrderRepo.Get(ctx, cmd.SubOrderID())
	if err != nil {
		return nil, err
	}
	if expected, ok := cmd.ExpectedVersion(); ok && expected != s.Version() {
		return nil, errs.NewConcurrentModificationError("sub-order", s.ID().String(), expected)
	}

	previous := s.Status()
	now := time.Now().UTC()
	changed, err := s.Transition(cmd.Target(), cmd.Note(), now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return s, nil
	}

	if err = subOrderRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	actorID := cmd.Actor().UserID()
	event, err := audit.NewSubOrderEvent(s.ID(), s.OrderID(), s.KitchenID(), previous.String(), s.Status().String(),
		actorID, now, cmd.Note(), time.Since(started), s.Status().IsCritical())
	if err != nil {
		return nil, err
	}
	if err = uow.AuditRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	if s.Status().IsTerminal() {
		if err = uow.KitchenRepository().AdjustLoad(ctx, s.KitchenID(), -1); err != nil {
			return nil, err
		}
	}

	orderStatus, err := recomputeOrderStatus(ctx, uow, s.OrderID(), actorID, now)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("sub-order transitioned",
		zap.String("sub_order_id", s.ID().String()),
		zap.String("from", previous.String()),
		zap.String("to", s.Status().String()),
		zap.String("order_status", orderStatus.String()),
		zap.String("action", string(action)),
		zap.String("actor_id", actorID.String()))
	return s, nil
}
