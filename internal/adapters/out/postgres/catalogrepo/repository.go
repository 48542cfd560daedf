// Package catalogrepo reads the menu from the menu_items table. The table is
// owned by the menu service; this adapter never writes it outside tests.
package catalogrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Category  string    `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
	Available bool      `gorm:"not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormCatalog implements ports.Catalog.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// Resolve returns every requested item or errs.ObjectNotFoundError naming the
// first unknown id.
func (c *GormCatalog) Resolve(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.MenuItem, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	items := make(map[kernel.UUID]ports.MenuItem, len(ids))
	if len(raw) == 0 {
		return items, nil
	}

	var dtos []MenuItemDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		items[id] = ports.MenuItem{
			ID:        id,
			Name:      dto.Name,
			Category:  dto.Category,
			UnitPrice: kernel.Amount(dto.UnitPrice),
			Available: dto.Available,
		}
	}

	for _, id := range ids {
		if _, ok := items[id]; !ok {
			return nil, errs.NewObjectNotFoundError("menu item", id.String())
		}
	}
	return items, nil
}

// Save upserts a menu item. Used to seed reference data.
func (c *GormCatalog) Save(ctx context.Context, item ports.MenuItem) error {
	if err := item.ID.Validate(); err != nil {
		return err
	}
	dto := MenuItemDTO{
		ID:        item.ID.Bytes(),
		Name:      item.Name,
		Category:  item.Category,
		UnitPrice: item.UnitPrice.Int64(),
		Available: item.Available,
	}
	return c.db.WithContext(ctx).Save(&dto).Error
}
