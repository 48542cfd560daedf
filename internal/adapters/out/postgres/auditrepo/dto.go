// Package auditrepo stores transition events. Rows are inserted and, by the
// retention sweep only, deleted; never updated.
package auditrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventDTO maps an event to the audit_events table. Elapsed is stored in
// nanoseconds.
type EventDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SubjectKind    string     `gorm:"not null"`
	SubjectID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	KitchenID      *uuid.UUID `gorm:"type:uuid;index"`
	PreviousStatus string     `gorm:"not null;default:''"`
	NewStatus      string     `gorm:"not null"`
	ActorID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	OccurredAt     time.Time  `gorm:"not null;index"`
	Notes          string     `gorm:"not null;default:''"`
	ElapsedNs      int64      `gorm:"column:elapsed_ns;not null;default:0"`
	Critical       bool       `gorm:"not null;default:false"`
}

func (EventDTO) TableName() string {
	return "audit_events"
}

func fromDomain(e *audit.Event) EventDTO {
	var kitchenID *uuid.UUID
	if id := e.KitchenID(); id != nil {
		raw := id.Bytes()
		kitchenID = &raw
	}

	return EventDTO{
		ID:             e.ID().Bytes(),
		SubjectKind:    string(e.SubjectKind()),
		SubjectID:      e.SubjectID().Bytes(),
		OrderID:        e.OrderID().Bytes(),
		KitchenID:      kitchenID,
		PreviousStatus: e.PreviousStatus(),
		NewStatus:      e.NewStatus(),
		ActorID:        e.ActorID().Bytes(),
		OccurredAt:     e.OccurredAt(),
		Notes:          e.Notes(),
		ElapsedNs:      e.Elapsed().Nanoseconds(),
		Critical:       e.IsCritical(),
	}
}

func toDomain(dto EventDTO) (*audit.Event, error) {
	var ids [4]kernel.UUID
	for i, raw := range []uuid.UUID{dto.ID, dto.SubjectID, dto.OrderID, dto.ActorID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	var kitchenID *kernel.UUID
	if dto.KitchenID != nil {
		id, err := kernel.UUIDFromBytes((*dto.KitchenID)[:])
		if err != nil {
			return nil, err
		}
		kitchenID = &id
	}

	return audit.RestoreEvent(ids[0], audit.SubjectKind(dto.SubjectKind), ids[1], ids[2], kitchenID,
		dto.PreviousStatus, dto.NewStatus, ids[3], dto.OccurredAt, dto.Notes,
		time.Duration(dto.ElapsedNs), dto.Critical)
}
