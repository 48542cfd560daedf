// Package suborderrepo persists sub-orders and their item lines.
package suborderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/suborder"

	"github.com/google/uuid"
)

// SubOrderDTO maps a sub-order to the sub_orders table. Version is the
// optimistic lock column.
type SubOrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sub_orders_order_position"`
	KitchenID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ServingUnitID uuid.UUID `gorm:"type:uuid;not null"`
	Position      int       `gorm:"not null;uniqueIndex:idx_sub_orders_order_position"`
	Status        int       `gorm:"not null"`
	Total         int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	ConfirmedAt   *time.Time
	StartedAt     *time.Time
	ReadyAt       *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string    `gorm:"not null;default:''"`
	Version       int       `gorm:"not null"`
	Items         []ItemDTO `gorm:"foreignKey:SubOrderID;constraint:OnDelete:CASCADE"`
}

func (SubOrderDTO) TableName() string {
	return "sub_orders"
}

// ItemDTO is one line of a sub-order, keyed by its position in the list.
type ItemDTO struct {
	SubOrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null"`
	Name       string    `gorm:"not null"`
	Category   string    `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
	UnitPrice  int64     `gorm:"not null"`
	Notes      string    `gorm:"not null;default:''"`
}

func (ItemDTO) TableName() string {
	return "sub_order_items"
}

func fromDomain(s *suborder.SubOrder) SubOrderDTO {
	m := s.Milestones()
	items := s.Items()

	dto := SubOrderDTO{
		ID:            s.ID().Bytes(),
		OrderID:       s.OrderID().Bytes(),
		KitchenID:     s.KitchenID().Bytes(),
		ServingUnitID: s.ServingUnitID().Bytes(),
		Position:      s.Position(),
		Status:        int(s.Status()),
		Total:         s.Total().Int64(),
		CreatedAt:     s.CreatedAt(),
		ConfirmedAt:   m.ConfirmedAt,
		StartedAt:     m.StartedAt,
		ReadyAt:       m.ReadyAt,
		DeliveredAt:   m.DeliveredAt,
		CancelledAt:   m.CancelledAt,
		CancelReason:  s.CancelReason(),
		Version:       s.Version(),
		Items:         make([]ItemDTO, 0, len(items)),
	}
	for i, it := range items {
		dto.Items = append(dto.Items, ItemDTO{
			SubOrderID: dto.ID,
			Position:   i + 1,
			MenuItemID: it.MenuItemID().Bytes(),
			Name:       it.Name(),
			Category:   it.Category(),
			Quantity:   it.Quantity(),
			UnitPrice:  it.UnitPrice().Int64(),
			Notes:      it.Notes(),
		})
	}
	return dto
}

func toDomain(dto SubOrderDTO) (*suborder.SubOrder, error) {
	var ids [4]kernel.UUID
	for i, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.KitchenID, dto.ServingUnitID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	items := make([]suborder.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		menuItemID, err := kernel.UUIDFromBytes(it.MenuItemID[:])
		if err != nil {
			return nil, err
		}
		item, err := suborder.NewItem(menuItemID, it.Name, it.Category, it.Quantity, kernel.Amount(it.UnitPrice), it.Notes)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	milestones := suborder.Milestones{
		ConfirmedAt: utc(dto.ConfirmedAt),
		StartedAt:   utc(dto.StartedAt),
		ReadyAt:     utc(dto.ReadyAt),
		DeliveredAt: utc(dto.DeliveredAt),
		CancelledAt: utc(dto.CancelledAt),
	}

	return suborder.RestoreSubOrder(ids[0], ids[1], ids[2], ids[3], dto.Position, suborder.Status(dto.Status),
		items, dto.CreatedAt, milestones, dto.CancelReason, dto.Version)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
