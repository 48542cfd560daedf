package kitchenrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormKitchenRepository implements ports.KitchenRepository using GORM.
type GormKitchenRepository struct {
	db *gorm.DB
}

func NewGormKitchenRepository(db *gorm.DB) *GormKitchenRepository {
	return &GormKitchenRepository{db: db}
}

// Add inserts the kitchen with its serving unit links.
func (r *GormKitchenRepository) Add(ctx context.Context, aggregate *kitchen.Kitchen) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("kitchen", aggregate.ID().String())
		}
		return err
	}
	return nil
}

func (r *GormKitchenRepository) Update(ctx context.Context, aggregate *kitchen.Kitchen) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&KitchenDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"name":   aggregate.Name(),
			"active": aggregate.IsActive(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("kitchen", aggregate.ID().String())
	}
	return nil
}

func (r *GormKitchenRepository) Get(ctx context.Context, id kernel.UUID) (*kitchen.Kitchen, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto KitchenDTO
	if err := r.db.WithContext(ctx).Preload("ServingUnits").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("kitchen", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormKitchenRepository) FindActiveByType(ctx context.Context, kind kitchen.Type) ([]*kitchen.Kitchen, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	var dtos []KitchenDTO
	err := r.db.WithContext(ctx).
		Preload("ServingUnits").
		Where("type = ? AND active = ?", int(kind), true).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	kitchens := make([]*kitchen.Kitchen, 0, len(dtos))
	for _, dto := range dtos {
		k, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		kitchens = append(kitchens, k)
	}
	return kitchens, nil
}

// AdjustLoad applies delta in a single statement so concurrent order
// creations and completions never overwrite each other's count.
func (r *GormKitchenRepository) AdjustLoad(ctx context.Context, id kernel.UUID, delta int) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&KitchenDTO{}).
		Where("id = ?", id.Bytes()).
		Update("active_sub_orders", gorm.Expr(
			"CASE WHEN active_sub_orders + ? < 0 THEN 0 ELSE active_sub_orders + ? END", delta, delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("kitchen", id.String())
	}
	return nil
}
