package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"
)

type FindAuditEventsQueryHandler struct {
	events AuditReader
}

func NewFindAuditEventsQueryHandler(events AuditReader) FindAuditEventsQueryHandler {
	return FindAuditEventsQueryHandler{events: events}
}

// Handle returns matching events oldest first.
func (h FindAuditEventsQueryHandler) Handle(ctx context.Context, query FindAuditEventsQuery) ([]AuditEventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events, err := h.events.Find(ctx, query.Filter())
	if err != nil {
		return nil, err
	}

	views := make([]AuditEventView, 0, len(events))
	for _, e := range events {
		views = append(views, toAuditEventView(e))
	}
	return views, nil
}

func toAuditEventView(e *audit.Event) AuditEventView {
	return AuditEventView{
		ID:             e.ID(),
		SubjectKind:    string(e.SubjectKind()),
		SubjectID:      e.SubjectID(),
		OrderID:        e.OrderID(),
		KitchenID:      e.KitchenID(),
		PreviousStatus: e.PreviousStatus(),
		NewStatus:      e.NewStatus(),
		ActorID:        e.ActorID(),
		OccurredAt:     e.OccurredAt(),
		Notes:          e.Notes(),
		Elapsed:        e.Elapsed(),
		Critical:       e.IsCritical(),
	}
}

type CountOrderEventsQueryHandler struct {
	events AuditReader
}

func NewCountOrderEventsQueryHandler(events AuditReader) CountOrderEventsQueryHandler {
	return CountOrderEventsQueryHandler{events: events}
}

func (h CountOrderEventsQueryHandler) Handle(ctx context.Context, query CountOrderEventsQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}
	return h.events.CountByOrder(ctx, query.OrderID())
}

type GetKitchenLatencyQueryHandler struct {
	events AuditReader
}

func NewGetKitchenLatencyQueryHandler(events AuditReader) GetKitchenLatencyQueryHandler {
	return GetKitchenLatencyQueryHandler{events: events}
}

// Handle returns one entry per kitchen that has recorded transitions. A
// kitchen without any yields an empty slice, not an error.
func (h GetKitchenLatencyQueryHandler) Handle(ctx context.Context, query GetKitchenLatencyQuery) ([]audit.KitchenLatency, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.events.MeanLatencyByKitchen(ctx, query.KitchenID())
}
