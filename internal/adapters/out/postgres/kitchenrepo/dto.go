// Package kitchenrepo persists kitchens and the serving units they serve.
package kitchenrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"

	"github.com/google/uuid"
)

// KitchenDTO maps a kitchen to the kitchens table. ActiveSubOrders is only
// ever changed through AdjustLoad.
type KitchenDTO struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name            string           `gorm:"not null"`
	Type            int              `gorm:"not null;index:idx_kitchens_type_active"`
	Active          bool             `gorm:"not null;index:idx_kitchens_type_active"`
	ActiveSubOrders int              `gorm:"not null;default:0"`
	ServingUnits    []ServingUnitDTO `gorm:"foreignKey:KitchenID;constraint:OnDelete:CASCADE"`
}

func (KitchenDTO) TableName() string {
	return "kitchens"
}

type ServingUnitDTO struct {
	KitchenID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServingUnitID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ServingUnitDTO) TableName() string {
	return "kitchen_serving_units"
}

func fromDomain(k *kitchen.Kitchen) KitchenDTO {
	units := k.ServingUnitIDs()
	dto := KitchenDTO{
		ID:              k.ID().Bytes(),
		Name:            k.Name(),
		Type:            int(k.Type()),
		Active:          k.IsActive(),
		ActiveSubOrders: k.ActiveSubOrders(),
		ServingUnits:    make([]ServingUnitDTO, 0, len(units)),
	}
	for _, u := range units {
		dto.ServingUnits = append(dto.ServingUnits, ServingUnitDTO{KitchenID: dto.ID, ServingUnitID: u.Bytes()})
	}
	return dto
}

func toDomain(dto KitchenDTO) (*kitchen.Kitchen, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	units := make([]kernel.UUID, 0, len(dto.ServingUnits))
	for _, u := range dto.ServingUnits {
		unitID, unitErr := kernel.UUIDFromBytes(u.ServingUnitID[:])
		if unitErr != nil {
			return nil, unitErr
		}
		units = append(units, unitID)
	}

	return kitchen.RestoreKitchen(id, dto.Name, kitchen.Type(dto.Type), dto.Active, dto.ActiveSubOrders, units)
}
