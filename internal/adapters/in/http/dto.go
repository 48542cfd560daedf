package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/fund"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/suborder"

	"github.com/google/uuid"
)

type OrderLineRequest struct {
	MenuItemID uuid.UUID `json:"menuItemId"`
	Quantity   int       `json:"quantity"`
	Notes      string    `json:"notes,omitempty"`
}

type CreateOrderRequest struct {
	ClientID      uuid.UUID          `json:"clientId"`
	ServingUnitID uuid.UUID          `json:"servingUnitId"`
	PaymentMode   string             `json:"paymentMode"`
	Items         []OrderLineRequest `json:"items"`
}

type OrderResponse struct {
	ID            uuid.UUID   `json:"id"`
	Number        string      `json:"number"`
	ClientID      uuid.UUID   `json:"clientId"`
	ServingUnitID uuid.UUID   `json:"servingUnitId"`
	PaymentMode   string      `json:"paymentMode"`
	Status        string      `json:"status"`
	Total         int64       `json:"total"`
	SubOrderIDs   []uuid.UUID `json:"subOrderIds"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	ids := o.SubOrderIDs()
	subOrderIDs := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		subOrderIDs[i] = id.Bytes()
	}
	return OrderResponse{
		ID:            o.ID().Bytes(),
		Number:        o.Number(),
		ClientID:      o.ClientID().Bytes(),
		ServingUnitID: o.ServingUnitID().Bytes(),
		PaymentMode:   o.PaymentMode().String(),
		Status:        o.Status().String(),
		Total:         o.Total().Int64(),
		SubOrderIDs:   subOrderIDs,
		CreatedAt:     o.CreatedAt(),
	}
}

type ItemResponse struct {
	MenuItemID uuid.UUID `json:"menuItemId"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Quantity   int       `json:"quantity"`
	UnitPrice  int64     `json:"unitPrice"`
	Notes      string    `json:"notes,omitempty"`
}

type SubOrderDetailResponse struct {
	ID           uuid.UUID      `json:"id"`
	KitchenID    uuid.UUID      `json:"kitchenId"`
	Position     int            `json:"position"`
	Status       string         `json:"status"`
	Total        int64          `json:"total"`
	CancelReason string         `json:"cancelReason,omitempty"`
	Version      int            `json:"version"`
	Items        []ItemResponse `json:"items"`
}

type OrderDetailResponse struct {
	ID            uuid.UUID                `json:"id"`
	Number        string                   `json:"number"`
	ClientID      uuid.UUID                `json:"clientId"`
	ServingUnitID uuid.UUID                `json:"servingUnitId"`
	PaymentMode   string                   `json:"paymentMode"`
	Status        string                   `json:"status"`
	Total         int64                    `json:"total"`
	CreatedAt     time.Time                `json:"createdAt"`
	SubOrders     []SubOrderDetailResponse `json:"subOrders"`
}

func newOrderDetailResponse(view *queries.GetOrderQueryResponse) OrderDetailResponse {
	subOrders := make([]SubOrderDetailResponse, len(view.SubOrders))
	for i, s := range view.SubOrders {
		items := make([]ItemResponse, len(s.Items))
		for j, item := range s.Items {
			items[j] = ItemResponse{
				MenuItemID: item.MenuItemID.Bytes(),
				Name:       item.Name,
				Category:   item.Category,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice.Int64(),
				Notes:      item.Notes,
			}
		}
		subOrders[i] = SubOrderDetailResponse{
			ID:           s.ID.Bytes(),
			KitchenID:    s.KitchenID.Bytes(),
			Position:     s.Position,
			Status:       s.Status,
			Total:        s.Total.Int64(),
			CancelReason: s.CancelReason,
			Version:      s.Version,
			Items:        items,
		}
	}
	return OrderDetailResponse{
		ID:            view.ID.Bytes(),
		Number:        view.Number,
		ClientID:      view.ClientID.Bytes(),
		ServingUnitID: view.ServingUnitID.Bytes(),
		PaymentMode:   view.PaymentMode,
		Status:        view.Status,
		Total:         view.Total.Int64(),
		CreatedAt:     view.CreatedAt,
		SubOrders:     subOrders,
	}
}

type OpenOrderResponse struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"number"`
	ServingUnitID uuid.UUID `json:"servingUnitId"`
	PaymentMode   string    `json:"paymentMode"`
	Status        string    `json:"status"`
	Total         int64     `json:"total"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newOpenOrderResponse(o queries.GetOpenOrdersQueryResponse) OpenOrderResponse {
	return OpenOrderResponse{
		ID:            o.ID.Bytes(),
		Number:        o.Number,
		ServingUnitID: o.ServingUnitID.Bytes(),
		PaymentMode:   o.PaymentMode,
		Status:        o.Status,
		Total:         o.Total.Int64(),
		CreatedAt:     o.CreatedAt,
	}
}

type OrderStatusResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Status  string    `json:"status"`
}

type EventCountResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Events  int64     `json:"events"`
}

// TransitionRequest moves a sub-order. Note is the reason when Target is
// "Cancelled".
type TransitionRequest struct {
	Target          string `json:"target"`
	Note            string `json:"note,omitempty"`
	ExpectedVersion *int   `json:"expectedVersion,omitempty"`
}

type SubOrderResponse struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"orderId"`
	KitchenID    uuid.UUID `json:"kitchenId"`
	Position     int       `json:"position"`
	Status       string    `json:"status"`
	Total        int64     `json:"total"`
	CancelReason string    `json:"cancelReason,omitempty"`
	Version      int       `json:"version"`
}

func newSubOrderResponse(s *suborder.SubOrder) SubOrderResponse {
	return SubOrderResponse{
		ID:           s.ID().Bytes(),
		OrderID:      s.OrderID().Bytes(),
		KitchenID:    s.KitchenID().Bytes(),
		Position:     s.Position(),
		Status:       s.Status().String(),
		Total:        s.Total().Int64(),
		CancelReason: s.CancelReason(),
		Version:      s.Version(),
	}
}

type RegisterKitchenRequest struct {
	Name           string      `json:"name"`
	Type           string      `json:"type"`
	ServingUnitIDs []uuid.UUID `json:"servingUnitIds"`
}

// SetKitchenActiveRequest uses a pointer so a missing field is not read as false.
type SetKitchenActiveRequest struct {
	Active *bool `json:"active"`
}

type KitchenResponse struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Type            string      `json:"type"`
	Active          bool        `json:"active"`
	ActiveSubOrders int         `json:"activeSubOrders"`
	ServingUnitIDs  []uuid.UUID `json:"servingUnitIds"`
}

func newKitchenResponse(k *kitchen.Kitchen) KitchenResponse {
	units := k.ServingUnitIDs()
	ids := make([]uuid.UUID, len(units))
	for i, id := range units {
		ids[i] = id.Bytes()
	}
	return KitchenResponse{
		ID:              k.ID().Bytes(),
		Name:            k.Name(),
		Type:            k.Type().String(),
		Active:          k.IsActive(),
		ActiveSubOrders: k.ActiveSubOrders(),
		ServingUnitIDs:  ids,
	}
}

type KitchenLatencyResponse struct {
	KitchenID   uuid.UUID `json:"kitchenId"`
	Transitions int       `json:"transitions"`
	MeanMs      float64   `json:"meanMs"`
}

func newKitchenLatencyResponse(l audit.KitchenLatency) KitchenLatencyResponse {
	return KitchenLatencyResponse{
		KitchenID:   l.KitchenID.Bytes(),
		Transitions: l.Transitions,
		MeanMs:      float64(l.Mean) / float64(time.Millisecond),
	}
}

type AuditEventResponse struct {
	ID             uuid.UUID  `json:"id"`
	SubjectKind    string     `json:"subjectKind"`
	SubjectID      uuid.UUID  `json:"subjectId"`
	OrderID        uuid.UUID  `json:"orderId"`
	KitchenID      *uuid.UUID `json:"kitchenId,omitempty"`
	PreviousStatus string     `json:"previousStatus"`
	NewStatus      string     `json:"newStatus"`
	ActorID        uuid.UUID  `json:"actorId"`
	OccurredAt     time.Time  `json:"occurredAt"`
	Notes          string     `json:"notes,omitempty"`
	ElapsedMs      int64      `json:"elapsedMs"`
	Critical       bool       `json:"critical"`
}

func newAuditEventResponse(e queries.AuditEventView) AuditEventResponse {
	return AuditEventResponse{
		ID:             e.ID.Bytes(),
		SubjectKind:    e.SubjectKind,
		SubjectID:      e.SubjectID.Bytes(),
		OrderID:        e.OrderID.Bytes(),
		KitchenID:      optionalID(e.KitchenID),
		PreviousStatus: e.PreviousStatus,
		NewStatus:      e.NewStatus,
		ActorID:        e.ActorID.Bytes(),
		OccurredAt:     e.OccurredAt,
		Notes:          e.Notes,
		ElapsedMs:      e.Elapsed.Milliseconds(),
		Critical:       e.Critical,
	}
}

type CreditRequest struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type DebitRequest struct {
	OrderID uuid.UUID `json:"orderId"`
	Amount  int64     `json:"amount"`
}

type FundResponse struct {
	ID        uuid.UUID          `json:"id"`
	ClientID  uuid.UUID          `json:"clientId"`
	Balance   int64              `json:"balance"`
	Active    bool               `json:"active"`
	Version   int                `json:"version"`
	Movements []MovementResponse `json:"movements,omitempty"`
}

func newFundResponse(f *fund.Fund) FundResponse {
	return FundResponse{
		ID:       f.ID().Bytes(),
		ClientID: f.ClientID().Bytes(),
		Balance:  f.Balance().Int64(),
		Active:   f.IsActive(),
		Version:  f.Version(),
	}
}

func newFundDetailResponse(view *queries.GetFundQueryResponse) FundResponse {
	movements := make([]MovementResponse, len(view.Movements))
	for i, m := range view.Movements {
		movements[i] = MovementResponse{
			ID:            m.ID.Bytes(),
			Kind:          m.Kind,
			Amount:        m.Amount.Int64(),
			BalanceBefore: m.BalanceBefore.Int64(),
			BalanceAfter:  m.BalanceAfter.Int64(),
			OrderID:       optionalID(m.OrderID),
			Note:          m.Note,
			CreatedAt:     m.CreatedAt,
		}
	}
	return FundResponse{
		ID:        view.ID.Bytes(),
		ClientID:  view.ClientID.Bytes(),
		Balance:   view.Balance.Int64(),
		Active:    view.Active,
		Version:   view.Version,
		Movements: movements,
	}
}

type MovementResponse struct {
	ID            uuid.UUID  `json:"id"`
	Kind          string     `json:"kind"`
	Amount        int64      `json:"amount"`
	BalanceBefore int64      `json:"balanceBefore"`
	BalanceAfter  int64      `json:"balanceAfter"`
	OrderID       *uuid.UUID `json:"orderId,omitempty"`
	Note          string     `json:"note,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func newMovementResponse(m *fund.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID().Bytes(),
		Kind:          m.Kind().String(),
		Amount:        m.Amount().Int64(),
		BalanceBefore: m.BalanceBefore().Int64(),
		BalanceAfter:  m.BalanceAfter().Int64(),
		OrderID:       optionalID(m.OrderID()),
		Note:          m.Note(),
		CreatedAt:     m.CreatedAt(),
	}
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
