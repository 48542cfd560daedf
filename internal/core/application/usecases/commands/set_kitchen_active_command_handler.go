package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/services"

	"go.uber.org/zap"
)

// SetKitchenActiveCommandHandler toggles a kitchen. Sub-orders already
// routed to a deactivated kitchen keep progressing there.
type SetKitchenActiveCommandHandler struct {
	uowFactory KitchenUoWFactory
	policy     services.TransitionPolicy
	logger     *zap.Logger
}

func NewSetKitchenActiveCommandHandler(uowFactory KitchenUoWFactory, logger *zap.Logger) *SetKitchenActiveCommandHandler {
	return &SetKitchenActiveCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
		logger:     logger,
	}
}

func (h *SetKitchenActiveCommandHandler) Handle(ctx context.Context, cmd SetKitchenActiveCommand) (*kitchen.Kitchen, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Actor(), services.ActionManageKitchens); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	kitchenRepo := uow.KitchenRepository()
	k, err := kitchenRepo.Get(ctx, cmd.KitchenID())
	if err != nil {
		return nil, err
	}
	if k.IsActive() == cmd.Active() {
		return k, nil
	}

	if cmd.Active() {
		k.Activate()
	} else {
		k.Deactivate()
	}

	if err = kitchenRepo.Update(ctx, k); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("kitchen availability changed",
		zap.String("kitchen_id", k.ID().String()),
		zap.Bool("active", k.IsActive()))
	return k, nil
}
