package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/core/domain/services"
)

// aggregationUoW is what recomputeOrderStatus needs from a unit of work.
type aggregationUoW interface {
	OrderRepoFactory
	SubOrderRepoFactory
	AuditRepoFactory
}

// RecomputeOrderStatusCommandHandler applies services.AggregateOrderStatus
// to an order in its own unit of work.
type RecomputeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewRecomputeOrderStatusCommandHandler(uowFactory UoWFactory) RecomputeOrderStatusCommandHandler {
	return RecomputeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the order status after recomputation. An unchanged status
// is not written and produces no audit event.
func (h RecomputeOrderStatusCommandHandler) Handle(ctx context.Context, cmd RecomputeOrderStatusCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	status, err := recomputeOrderStatus(ctx, uow, cmd.OrderID(), cmd.Actor().UserID(), time.Now().UTC())
	if err != nil {
		return order.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Unknown, err
	}

	return status, nil
}

// recomputeOrderStatus locks the order row, derives its status from the
// current sub-orders and persists it with one order-level audit event only
// when it differs from the stored one.
func recomputeOrderStatus(
	ctx context.Context,
	uow aggregationUoW,
	orderID, actorID kernel.UUID,
	now time.Time,
) (order.Status, error) {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return order.Unknown, err
	}

	subOrders, err := uow.SubOrderRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return order.Unknown, err
	}
	statuses := make([]suborder.Status, 0, len(subOrders))
	for _, s := range subOrders {
		statuses = append(statuses, s.Status())
	}

	previous := o.Status()
	changed, err := o.ApplyAggregatedStatus(services.AggregateOrderStatus(statuses))
	if err != nil {
		return order.Unknown, err
	}
	if !changed {
		return previous, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return order.Unknown, err
	}

	event, err := audit.NewOrderEvent(o.ID(), previous.String(), o.Status().String(), actorID, now, "")
	if err != nil {
		return order.Unknown, err
	}
	if err = uow.AuditRepository().Append(ctx, event); err != nil {
		return order.Unknown, err
	}

	return o.Status(), nil
}
