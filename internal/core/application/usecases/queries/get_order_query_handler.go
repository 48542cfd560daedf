package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders straight from the tables, bypassing the
// aggregates.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s is %s with %d sub-orders\n", view.Number, view.Status, len(view.SubOrders))
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.readOrder(db, query.OrderID())
	if err != nil {
		return nil, err
	}

	index := make(map[kernel.UUID]int)
	rows, err := db.Raw(`
		SELECT
			id,
			kitchen_id,
			position,
			status,
			total,
			cancel_reason,
			version
		FROM sub_orders
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view          SubOrderView
			id, kitchenID uuid.UUID
			status        int
			total         int64
		)
		if err = rows.Scan(&id, &kitchenID, &view.Position, &status, &total, &view.CancelReason, &view.Version); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.KitchenID, err = kernel.UUIDFromBytes(kitchenID[:]); err != nil {
			return nil, err
		}
		view.Status = suborder.Status(status).String()
		view.Total = kernel.Amount(total)
		view.Items = make([]ItemView, 0)

		index[view.ID] = len(resp.SubOrders)
		resp.SubOrders = append(resp.SubOrders, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = h.readItems(db, query.OrderID(), resp, index); err != nil {
		return nil, err
	}
	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(db *gorm.DB, orderID kernel.UUID) (*GetOrderQueryResponse, error) {
	var (
		resp                 GetOrderQueryResponse
		id, clientID, unitID uuid.UUID
		status               int
		total                int64
	)

	row := db.Raw(`
		SELECT
			id,
			number,
			client_id,
			serving_unit_id,
			payment_mode,
			status,
			total,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()
	if err := row.Scan(&id, &resp.Number, &clientID, &unitID, &resp.PaymentMode, &status, &total, &resp.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}

	var err error
	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
		return nil, err
	}
	if resp.ServingUnitID, err = kernel.UUIDFromBytes(unitID[:]); err != nil {
		return nil, err
	}
	resp.Status = order.Status(status).String()
	resp.Total = kernel.Amount(total)
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.SubOrders = make([]SubOrderView, 0)
	return &resp, nil
}

func (h GetOrderQueryHandler) readItems(
	db *gorm.DB,
	orderID kernel.UUID,
	resp *GetOrderQueryResponse,
	index map[kernel.UUID]int,
) error {
	rows, err := db.Raw(`
		SELECT
			i.sub_order_id,
			i.menu_item_id,
			i.name,
			i.category,
			i.quantity,
			i.unit_price,
			i.notes
		FROM sub_order_items i
		JOIN sub_orders s ON s.id = i.sub_order_id
		WHERE s.order_id = ?
		ORDER BY s.position, i.position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item               ItemView
			subOrderID, menuID uuid.UUID
			unitPrice          int64
		)
		if err = rows.Scan(&subOrderID, &menuID, &item.Name, &item.Category, &item.Quantity, &unitPrice, &item.Notes); err != nil {
			return err
		}
		if item.MenuItemID, err = kernel.UUIDFromBytes(menuID[:]); err != nil {
			return err
		}
		item.UnitPrice = kernel.Amount(unitPrice)

		soID, idErr := kernel.UUIDFromBytes(subOrderID[:])
		if idErr != nil {
			return idErr
		}
		if i, ok := index[soID]; ok {
			resp.SubOrders[i].Items = append(resp.SubOrders[i].Items, item)
		}
	}
	return rows.Err()
}
