package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"go.uber.org/zap"
)

// CreateOrderCommandHandler turns a client request into an order and its
// per-kitchen sub-orders.
//
// Within one unit of work it routes every kitchen type once, builds the
// sub-orders, raises the kitchens' load counters, records a Created audit
// event for the order and for each sub-order and, for prepaid orders, debits
// the client's fund with the order id as idempotency key. Prepaid orders run
// in a SERIALIZABLE transaction and are retried by RetryPolicy.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, policy, DefaultRetryPolicy(), logger)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrNoCapableResource):
//	    // a kitchen type has no active station
//	case errors.Is(err, errs.ErrInsufficientBalance):
//	    // the client must top up first
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.Catalog
	payments   services.DeferredPaymentPolicy
	retry      RetryPolicy
	logger     *zap.Logger
	router     services.KitchenRouter
	planner    services.SubOrderPlanner
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	catalog ports.Catalog,
	payments services.DeferredPaymentPolicy,
	retry RetryPolicy,
	logger *zap.Logger,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		payments:   payments,
		retry:      retry,
		logger:     logger,
		router:     services.NewKitchenRouter(),
		planner:    services.NewSubOrderPlanner(),
	}
}

// Handle returns the created order. Nothing is persisted when it fails.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := h.resolveItems(ctx, cmd.Lines())
	if err != nil {
		return nil, err
	}

	if cmd.PaymentMode() == order.Deferred {
		var total kernel.Amount
		for _, it := range items {
			if total, err = total.Add(it.Total()); err != nil {
				return nil, err
			}
		}
		if err = h.payments.Check(cmd.ServingUnitID(), total); err != nil {
			return nil, err
		}
	}

	var created *order.Order
	err = h.retry.retry(ctx, h.logger, "create order", func() error {
		o, createErr := h.create(ctx, cmd, items)
		created = o
		return createErr
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("order created",
		zap.String("order_id", created.ID().String()),
		zap.String("number", created.Number()),
		zap.Int("sub_orders", len(created.SubOrderIDs())),
		zap.Int64("total", created.Total().Int64()))
	return created, nil
}

func (h *CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand, items []suborder.Item) (*order.Order, error) {
	uow := h.uowFactory.Create()
	begin := uow.Begin
	if cmd.PaymentMode() == order.Prepaid {
		begin = uow.BeginSerializable
	}
	if err := begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	o, err := order.NewOrder(kernel.NewUUID(), cmd.ClientID(), cmd.ServingUnitID(), cmd.PaymentMode(), now)
	if err != nil {
		return nil, err
	}

	kitchenRepo := uow.KitchenRepository()
	routed, err := h.route(ctx, kitchenRepo, o, items)
	if err != nil {
		return nil, err
	}

	subOrders, err := h.planner.CreateWorkUnits(o, routed, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	actorID := cmd.Actor().UserID()
	orderEvent, err := audit.NewOrderEvent(o.ID(), "", o.Status().String(), actorID, now, "")
	if err != nil {
		return nil, err
	}
	events := []*audit.Event{orderEvent}

	subOrderRepo := uow.SubOrderRepository()
	for _, s := range subOrders {
		if err = subOrderRepo.Add(ctx, s); err != nil {
			return nil, err
		}
		if err = kitchenRepo.AdjustLoad(ctx, s.KitchenID(), 1); err != nil {
			return nil, err
		}
		e, eventErr := audit.NewSubOrderEvent(s.ID(), o.ID(), s.KitchenID(), "", s.Status().String(),
			actorID, now, "", 0, false)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, e)
	}

	if err = uow.AuditRepository().Append(ctx, events...); err != nil {
		return nil, err
	}

	// A zero total has nothing to settle, so no movement is recorded.
	if o.PaymentMode() == order.Prepaid && o.Total() > 0 {
		if err = h.debit(ctx, uow.FundRepository(), o, now); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// route asks the router once per kitchen type, in the order types first
// appear among items.
func (h *CreateOrderCommandHandler) route(
	ctx context.Context,
	kitchens ports.KitchenRepository,
	o *order.Order,
	items []suborder.Item,
) ([]services.RoutedItem, error) {
	chosen := make(map[kitchen.Type]kernel.UUID)
	routed := make([]services.RoutedItem, 0, len(items))

	for _, it := range items {
		kind := services.TypeForCategory(it.Category())
		kitchenID, ok := chosen[kind]
		if !ok {
			candidates, err := kitchens.FindActiveByType(ctx, kind)
			if err != nil {
				return nil, err
			}
			route, err := h.router.Route(it.Category(), o.ServingUnitID(), candidates)
			if err != nil {
				return nil, err
			}
			if route.Degraded {
				h.logger.Warn("degraded routing: no local kitchen for serving unit",
					zap.String("order_id", o.ID().String()),
					zap.String("serving_unit_id", o.ServingUnitID().String()),
					zap.String("kitchen_type", kind.String()),
					zap.String("kitchen_id", route.Kitchen.ID().String()))
			}
			kitchenID = route.Kitchen.ID()
			chosen[kind] = kitchenID
		}
		routed = append(routed, services.RoutedItem{Item: it, KitchenID: kitchenID})
	}

	return routed, nil
}

func (h *CreateOrderCommandHandler) debit(ctx context.Context, funds ports.FundRepository, o *order.Order, now time.Time) error {
	f, err := funds.GetByClient(ctx, o.ClientID())
	if err != nil {
		return err
	}
	m, err := f.Debit(o.ID(), o.Total(), now)
	if err != nil {
		return err
	}
	if err = funds.Update(ctx, f); err != nil {
		return err
	}
	return funds.AddMovement(ctx, m)
}

func (h *CreateOrderCommandHandler) resolveItems(ctx context.Context, lines []OrderLine) ([]suborder.Item, error) {
	ids := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.MenuItemID)
	}

	menu, err := h.catalog.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]suborder.Item, 0, len(lines))
	for _, l := range lines {
		mi, ok := menu[l.MenuItemID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("menu item", l.MenuItemID.String())
		}
		if !mi.Available {
			return nil, errs.NewValueIsInvalidErrorWithCause("menu item is invalid", fmt.Errorf("%s is not available", mi.Name))
		}
		it, itemErr := suborder.NewItem(mi.ID, mi.Name, mi.Category, l.Quantity, mi.UnitPrice, l.Notes)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, it)
	}

	return items, nil
}
