package fundrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/fund"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFundRepository implements ports.FundRepository using GORM.
type GormFundRepository struct {
	db *gorm.DB
}

func NewGormFundRepository(db *gorm.DB) *GormFundRepository {
	return &GormFundRepository{db: db}
}

func (r *GormFundRepository) Add(ctx context.Context, aggregate *fund.Fund) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("active fund of client", aggregate.ClientID().String())
		}
		return err
	}
	return nil
}

// Update is gated on the version the fund was loaded with.
func (r *GormFundRepository) Update(ctx context.Context, aggregate *fund.Fund) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&FundDTO{}).
		Where("id = ? AND version = ?", aggregate.ID().Bytes(), aggregate.BaseVersion()).
		Updates(map[string]any{
			"balance": aggregate.Balance().Int64(),
			"active":  aggregate.IsActive(),
			"version": aggregate.Version(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&FundDTO{}).
			Where("id = ?", aggregate.ID().Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("fund", aggregate.ID().String())
		}
		return errs.NewConcurrentModificationError("fund", aggregate.ID().String(), aggregate.BaseVersion())
	}
	return nil
}

func (r *GormFundRepository) Get(ctx context.Context, id kernel.UUID) (*fund.Fund, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FundDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("fund", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// GetByClient prefers the active fund, then the most recently opened one.
func (r *GormFundRepository) GetByClient(ctx context.Context, clientID kernel.UUID) (*fund.Fund, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}

	var dto FundDTO
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID.Bytes()).
		Order("active DESC").
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("fund of client", clientID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormFundRepository) AddMovement(ctx context.Context, movement *fund.Movement) error {
	if movement == nil {
		return errs.NewValueIsRequiredError("movement")
	}

	dto := movementFromDomain(movement)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			key := movement.Kind().String()
			if id := movement.OrderID(); id != nil {
				key = id.String() + "/" + key
			}
			return errs.NewAlreadyExistsError("movement", key)
		}
		return err
	}
	return nil
}

func (r *GormFundRepository) FindMovement(ctx context.Context, orderID kernel.UUID, kind fund.MovementKind) (*fund.Movement, error) {
	if err := errors.Join(orderID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	var dto MovementDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND kind = ?", orderID.Bytes(), kind.String()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(kind.String()+" movement", orderID.String())
		}
		return nil, err
	}
	return movementToDomain(dto)
}

func (r *GormFundRepository) ListMovements(ctx context.Context, fundID kernel.UUID) ([]*fund.Movement, error) {
	if err := fundID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MovementDTO
	err := r.db.WithContext(ctx).
		Where("fund_id = ?", fundID.Bytes()).
		Order("created_at").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	movements := make([]*fund.Movement, 0, len(dtos))
	for _, dto := range dtos {
		m, convErr := movementToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		movements = append(movements, m)
	}
	return movements, nil
}
