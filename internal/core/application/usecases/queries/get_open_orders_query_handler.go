package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle returns orders in Created or InProgress status sorted by creation
// time, then id.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).
		Table("orders").
		Select("id, number, serving_unit_id, payment_mode, status, total, created_at").
		Where("status IN ?", []int{int(order.Created), int(order.InProgress)})
	if unit := query.ServingUnitID(); unit != nil {
		stmt = stmt.Where("serving_unit_id = ?", unit.Bytes())
	}

	rows, err := stmt.Order("created_at").Order("id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOpenOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id, servingUnitID uuid.UUID
			number, mode      string
			status            int
			total             int64
			createdAt         time.Time
		)
		if err = rows.Scan(&id, &number, &servingUnitID, &mode, &status, &total, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		unitID, idErr := kernel.UUIDFromBytes(servingUnitID[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, GetOpenOrdersQueryResponse{
			ID:            orderID,
			Number:        number,
			ServingUnitID: unitID,
			PaymentMode:   mode,
			Status:        order.Status(status).String(),
			Total:         kernel.Amount(total),
			CreatedAt:     createdAt.UTC(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
