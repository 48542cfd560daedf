// Package orderrepo persists order aggregates. Sub-order ids are not stored
// on the order row: they are read back from sub_orders in position order.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO maps an order to the orders table.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number        string    `gorm:"uniqueIndex;not null"`
	ClientID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ServingUnitID uuid.UUID `gorm:"type:uuid;not null"`
	PaymentMode   string    `gorm:"not null"`
	Status        int       `gorm:"index;not null"`
	Total         int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID().Bytes(),
		Number:        o.Number(),
		ClientID:      o.ClientID().Bytes(),
		ServingUnitID: o.ServingUnitID().Bytes(),
		PaymentMode:   o.PaymentMode().String(),
		Status:        int(o.Status()),
		Total:         o.Total().Int64(),
		CreatedAt:     o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO, subOrderIDs []uuid.UUID) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	servingUnitID, err := kernel.UUIDFromBytes(dto.ServingUnitID[:])
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(subOrderIDs))
	for _, raw := range subOrderIDs {
		subOrderID, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, subOrderID)
	}

	return order.RestoreOrder(id, dto.Number, clientID, servingUnitID, order.PaymentMode(dto.PaymentMode),
		order.Status(dto.Status), kernel.Amount(dto.Total), ids, dto.CreatedAt)
}
