package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/fund"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type TransitionSubOrderHandler interface {
	Handle(ctx context.Context, cmd commands.TransitionSubOrderCommand) (*suborder.SubOrder, error)
}

type RecomputeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.RecomputeOrderStatusCommand) (order.Status, error)
}

type RegisterKitchenHandler interface {
	Handle(ctx context.Context, cmd commands.RegisterKitchenCommand) (*kitchen.Kitchen, error)
}

type SetKitchenActiveHandler interface {
	Handle(ctx context.Context, cmd commands.SetKitchenActiveCommand) (*kitchen.Kitchen, error)
}

type OpenFundHandler interface {
	Handle(ctx context.Context, cmd commands.OpenFundCommand) (*fund.Fund, error)
}

type CloseFundHandler interface {
	Handle(ctx context.Context, cmd commands.CloseFundCommand) (*fund.Fund, error)
}

type CreditFundHandler interface {
	Handle(ctx context.Context, cmd commands.CreditFundCommand) (*fund.Movement, error)
}

type DebitFundHandler interface {
	Handle(ctx context.Context, cmd commands.DebitFundCommand) (*fund.Movement, error)
}

type RefundFundHandler interface {
	Handle(ctx context.Context, cmd commands.RefundFundCommand) (*fund.Movement, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.GetOrderQueryResponse, error)
}

type GetOpenOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.GetOpenOrdersQueryResponse, error)
}

type CountOrderEventsHandler interface {
	Handle(ctx context.Context, query queries.CountOrderEventsQuery) (int64, error)
}

type FindAuditEventsHandler interface {
	Handle(ctx context.Context, query queries.FindAuditEventsQuery) ([]queries.AuditEventView, error)
}

type GetKitchenLatencyHandler interface {
	Handle(ctx context.Context, query queries.GetKitchenLatencyQuery) ([]audit.KitchenLatency, error)
}

type GetFundHandler interface {
	Handle(ctx context.Context, query queries.GetFundQuery) (*queries.GetFundQueryResponse, error)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder          CreateOrderHandler
	TransitionSubOrder   TransitionSubOrderHandler
	RecomputeOrderStatus RecomputeOrderStatusHandler
	RegisterKitchen      RegisterKitchenHandler
	SetKitchenActive     SetKitchenActiveHandler
	OpenFund             OpenFundHandler
	CloseFund            CloseFundHandler
	CreditFund           CreditFundHandler
	DebitFund            DebitFundHandler
	RefundFund           RefundFundHandler

	GetOrder          GetOrderHandler
	GetOpenOrders     GetOpenOrdersHandler
	CountOrderEvents  CountOrderEventsHandler
	FindAuditEvents   FindAuditEventsHandler
	GetKitchenLatency GetKitchenLatencyHandler
	GetFund           GetFundHandler
}

// Server translates HTTP requests into commands and queries. Handlers return
// errors unchanged; ErrorHandler turns them into problem details.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Register mounts every route under /api/v1.
func (s *Server) Register(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.POST("/orders", s.CreateOrder)
	g.GET("/orders", s.GetOpenOrders)
	g.GET("/orders/:id", s.GetOrder)
	g.POST("/orders/:id/status/recompute", s.RecomputeOrderStatus)
	g.GET("/orders/:id/events/count", s.CountOrderEvents)
	g.POST("/orders/:id/refund", s.RefundOrder)

	g.POST("/sub-orders/:id/transitions", s.TransitionSubOrder)

	g.POST("/kitchens", s.RegisterKitchen)
	g.PUT("/kitchens/:id/active", s.SetKitchenActive)
	g.GET("/kitchens/latency", s.GetKitchenLatency)

	g.GET("/audit-events", s.FindAuditEvents)

	g.POST("/clients/:clientId/fund", s.OpenFund)
	g.GET("/clients/:clientId/fund", s.GetFund)
	g.DELETE("/clients/:clientId/fund", s.CloseFund)
	g.POST("/clients/:clientId/fund/credits", s.CreditFund)
	g.POST("/clients/:clientId/fund/debits", s.DebitFund)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	clientID, err := idFrom(req.ClientID, "client id")
	if err != nil {
		return err
	}
	servingUnitID, err := idFrom(req.ServingUnitID, "serving unit id")
	if err != nil {
		return err
	}
	mode, err := order.ParsePaymentMode(req.PaymentMode)
	if err != nil {
		return err
	}
	lines := make([]commands.OrderLine, len(req.Items))
	for i, item := range req.Items {
		menuItemID, idErr := idFrom(item.MenuItemID, "menu item id")
		if idErr != nil {
			return idErr
		}
		lines[i] = commands.OrderLine{MenuItemID: menuItemID, Quantity: item.Quantity, Notes: item.Notes}
	}

	cmd, err := commands.NewCreateOrderCommand(clientID, servingUnitID, mode, lines, actor)
	if err != nil {
		return err
	}
	created, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newOrderResponse(created))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderDetailResponse(view))
}

// GetOpenOrders handles GET /api/v1/orders?servingUnitId=.
func (s *Server) GetOpenOrders(c echo.Context) error {
	servingUnitID, err := optionalQueryID(c, "servingUnitId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOpenOrdersQuery(servingUnitID)
	if err != nil {
		return err
	}
	open, err := s.h.GetOpenOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]OpenOrderResponse, len(open))
	for i, o := range open {
		response[i] = newOpenOrderResponse(o)
	}
	return c.JSON(http.StatusOK, response)
}

// RecomputeOrderStatus handles POST /api/v1/orders/:id/status/recompute.
func (s *Server) RecomputeOrderStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewRecomputeOrderStatusCommand(orderID, actor)
	if err != nil {
		return err
	}
	status, err := s.h.RecomputeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OrderStatusResponse{OrderID: orderID.Bytes(), Status: status.String()})
}

// CountOrderEvents handles GET /api/v1/orders/:id/events/count.
func (s *Server) CountOrderEvents(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewCountOrderEventsQuery(orderID)
	if err != nil {
		return err
	}
	n, err := s.h.CountOrderEvents.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, EventCountResponse{OrderID: orderID.Bytes(), Events: n})
}

// RefundOrder handles POST /api/v1/orders/:id/refund.
func (s *Server) RefundOrder(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewRefundFundCommand(orderID)
	if err != nil {
		return err
	}
	movement, err := s.h.RefundFund.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newMovementResponse(movement))
}

// TransitionSubOrder handles POST /api/v1/sub-orders/:id/transitions.
func (s *Server) TransitionSubOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	subOrderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req TransitionRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	target, err := suborder.ParseStatus(req.Target)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionSubOrderCommand(subOrderID, target, actor, req.Note, req.ExpectedVersion)
	if err != nil {
		return err
	}
	updated, err := s.h.TransitionSubOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSubOrderResponse(updated))
}

// RegisterKitchen handles POST /api/v1/kitchens.
func (s *Server) RegisterKitchen(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req RegisterKitchenRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	kind, err := kitchen.ParseType(req.Type)
	if err != nil {
		return err
	}
	units := make([]kernel.UUID, len(req.ServingUnitIDs))
	for i, raw := range req.ServingUnitIDs {
		if units[i], err = idFrom(raw, "serving unit id"); err != nil {
			return err
		}
	}

	cmd, err := commands.NewRegisterKitchenCommand(req.Name, kind, units, actor)
	if err != nil {
		return err
	}
	registered, err := s.h.RegisterKitchen.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newKitchenResponse(registered))
}

// SetKitchenActive handles PUT /api/v1/kitchens/:id/active.
func (s *Server) SetKitchenActive(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	kitchenID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req SetKitchenActiveRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	if req.Active == nil {
		return errs.NewValueIsRequiredError("active")
	}

	cmd, err := commands.NewSetKitchenActiveCommand(kitchenID, *req.Active, actor)
	if err != nil {
		return err
	}
	updated, err := s.h.SetKitchenActive.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newKitchenResponse(updated))
}

// GetKitchenLatency handles GET /api/v1/kitchens/latency?kitchenId=.
func (s *Server) GetKitchenLatency(c echo.Context) error {
	kitchenID, err := optionalQueryID(c, "kitchenId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetKitchenLatencyQuery(kitchenID)
	if err != nil {
		return err
	}
	latencies, err := s.h.GetKitchenLatency.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]KitchenLatencyResponse, len(latencies))
	for i, l := range latencies {
		response[i] = newKitchenLatencyResponse(l)
	}
	return c.JSON(http.StatusOK, response)
}

// FindAuditEvents handles GET /api/v1/audit-events. Supported parameters are
// subjectId, actorId, from, to (RFC 3339), critical and limit.
func (s *Server) FindAuditEvents(c echo.Context) error {
	var (
		filter   audit.Filter
		from, to time.Time
	)
	if err := echo.QueryParamsBinder(c).
		Time("from", &from, time.RFC3339).
		Time("to", &to, time.RFC3339).
		Bool("critical", &filter.CriticalOnly).
		Int("limit", &filter.Limit).
		BindError(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("audit filter", err)
	}
	if !from.IsZero() {
		filter.From = &from
	}
	if !to.IsZero() {
		filter.To = &to
	}

	var err error
	if filter.SubjectID, err = optionalQueryID(c, "subjectId"); err != nil {
		return err
	}
	if filter.ActorID, err = optionalQueryID(c, "actorId"); err != nil {
		return err
	}

	query, err := queries.NewFindAuditEventsQuery(filter)
	if err != nil {
		return err
	}
	events, err := s.h.FindAuditEvents.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]AuditEventResponse, len(events))
	for i, e := range events {
		response[i] = newAuditEventResponse(e)
	}
	return c.JSON(http.StatusOK, response)
}

// OpenFund handles POST /api/v1/clients/:clientId/fund.
func (s *Server) OpenFund(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	clientID, err := pathID(c, "clientId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewOpenFundCommand(clientID)
	if err != nil {
		return err
	}
	opened, err := s.h.OpenFund.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newFundResponse(opened))
}

// GetFund handles GET /api/v1/clients/:clientId/fund.
func (s *Server) GetFund(c echo.Context) error {
	clientID, err := pathID(c, "clientId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetFundQuery(clientID)
	if err != nil {
		return err
	}
	view, err := s.h.GetFund.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newFundDetailResponse(view))
}

// CloseFund handles DELETE /api/v1/clients/:clientId/fund.
func (s *Server) CloseFund(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	clientID, err := pathID(c, "clientId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCloseFundCommand(clientID)
	if err != nil {
		return err
	}
	closed, err := s.h.CloseFund.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newFundResponse(closed))
}

// CreditFund handles POST /api/v1/clients/:clientId/fund/credits.
func (s *Server) CreditFund(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	clientID, err := pathID(c, "clientId")
	if err != nil {
		return err
	}

	var req CreditRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCreditFundCommand(clientID, kernel.Amount(req.Amount), req.Note)
	if err != nil {
		return err
	}
	movement, err := s.h.CreditFund.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newMovementResponse(movement))
}

// DebitFund handles POST /api/v1/clients/:clientId/fund/debits.
func (s *Server) DebitFund(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	clientID, err := pathID(c, "clientId")
	if err != nil {
		return err
	}

	var req DebitRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	orderID, err := idFrom(req.OrderID, "order id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDebitFundCommand(clientID, orderID, kernel.Amount(req.Amount))
	if err != nil {
		return err
	}
	movement, err := s.h.DebitFund.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newMovementResponse(movement))
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func optionalQueryID(c echo.Context, name string) (*kernel.UUID, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil //nolint:nilnil // absent parameter
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}

func idFrom(raw uuid.UUID, name string) (kernel.UUID, error) {
	if raw == uuid.Nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
