package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/services"

	"go.uber.org/zap"
)

type RegisterKitchenCommandHandler struct {
	uowFactory KitchenUoWFactory
	policy     services.TransitionPolicy
	logger     *zap.Logger
}

func NewRegisterKitchenCommandHandler(uowFactory KitchenUoWFactory, logger *zap.Logger) *RegisterKitchenCommandHandler {
	return &RegisterKitchenCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
		logger:     logger,
	}
}

func (h *RegisterKitchenCommandHandler) Handle(ctx context.Context, cmd RegisterKitchenCommand) (*kitchen.Kitchen, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Actor(), services.ActionManageKitchens); err != nil {
		return nil, err
	}

	k, err := kitchen.NewKitchen(kernel.NewUUID(), cmd.Name(), cmd.Type(), cmd.ServingUnitIDs())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.KitchenRepository().Add(ctx, k); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("kitchen registered",
		zap.String("kitchen_id", k.ID().String()),
		zap.String("type", k.Type().String()),
		zap.Int("serving_units", len(k.ServingUnitIDs())))
	return k, nil
}
