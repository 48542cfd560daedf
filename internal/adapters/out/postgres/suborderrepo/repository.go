package suborderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/suborder"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSubOrderRepository implements ports.SubOrderRepository using GORM.
type GormSubOrderRepository struct {
	db *gorm.DB
}

func NewGormSubOrderRepository(db *gorm.DB) *GormSubOrderRepository {
	return &GormSubOrderRepository{db: db}
}

// Add inserts the sub-order with its items.
func (r *GormSubOrderRepository) Add(ctx context.Context, aggregate *suborder.SubOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("sub-order", aggregate.ID().String())
		}
		return err
	}
	return nil
}

// Update writes status, milestones and version when the stored version
// still equals the version the aggregate was loaded with. Items never change.
func (r *GormSubOrderRepository) Update(ctx context.Context, aggregate *suborder.SubOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SubOrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.BaseVersion()).
		Updates(map[string]any{
			"status":        dto.Status,
			"confirmed_at":  dto.ConfirmedAt,
			"started_at":    dto.StartedAt,
			"ready_at":      dto.ReadyAt,
			"delivered_at":  dto.DeliveredAt,
			"cancelled_at":  dto.CancelledAt,
			"cancel_reason": dto.CancelReason,
			"version":       dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}
	return nil
}

func (r *GormSubOrderRepository) Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SubOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sub-order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByOrder returns the sub-orders of an order in position order.
func (r *GormSubOrderRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*suborder.SubOrder, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SubOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("order_id = ?", orderID.Bytes()).
		Order("position").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	subOrders := make([]*suborder.SubOrder, 0, len(dtos))
	for _, dto := range dtos {
		s, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		subOrders = append(subOrders, s)
	}
	return subOrders, nil
}

func (r *GormSubOrderRepository) missingOrStale(ctx context.Context, aggregate *suborder.SubOrder) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&SubOrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("sub-order", aggregate.ID().String())
	}
	return errs.NewConcurrentModificationError("sub-order", aggregate.ID().String(), aggregate.BaseVersion())
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
