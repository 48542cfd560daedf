// Package fundrepo persists prepaid funds and their ledger movements.
package fundrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/fund"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// FundDTO maps a fund to the funds table. Version is the optimistic lock column.
type FundDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_funds_client_active,where:active"`
	Balance   int64     `gorm:"not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null"`
}

func (FundDTO) TableName() string {
	return "funds"
}

// MovementDTO maps a movement to the fund_movements table. The unique
// (order_id, kind) index makes debits and refunds idempotent per order.
type MovementDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FundID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind          string     `gorm:"not null;uniqueIndex:idx_fund_movements_order_kind,priority:2"`
	Amount        int64      `gorm:"not null"`
	BalanceBefore int64      `gorm:"not null"`
	BalanceAfter  int64      `gorm:"not null"`
	OrderID       *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_fund_movements_order_kind,priority:1"`
	Note          string     `gorm:"not null;default:''"`
	CreatedAt     time.Time  `gorm:"not null"`
}

func (MovementDTO) TableName() string {
	return "fund_movements"
}

func fromDomain(f *fund.Fund) FundDTO {
	return FundDTO{
		ID:        f.ID().Bytes(),
		ClientID:  f.ClientID().Bytes(),
		Balance:   f.Balance().Int64(),
		Active:    f.IsActive(),
		CreatedAt: f.CreatedAt(),
		Version:   f.Version(),
	}
}

func toDomain(dto FundDTO) (*fund.Fund, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	return fund.RestoreFund(id, clientID, kernel.Amount(dto.Balance), dto.Active, dto.CreatedAt, dto.Version)
}

func movementFromDomain(m *fund.Movement) MovementDTO {
	var orderID *uuid.UUID
	if id := m.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return MovementDTO{
		ID:            m.ID().Bytes(),
		FundID:        m.FundID().Bytes(),
		Kind:          m.Kind().String(),
		Amount:        m.Amount().Int64(),
		BalanceBefore: m.BalanceBefore().Int64(),
		BalanceAfter:  m.BalanceAfter().Int64(),
		OrderID:       orderID,
		Note:          m.Note(),
		CreatedAt:     m.CreatedAt(),
	}
}

func movementToDomain(dto MovementDTO) (*fund.Movement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	fundID, err := kernel.UUIDFromBytes(dto.FundID[:])
	if err != nil {
		return nil, err
	}
	kind, err := fund.ParseMovementKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, idErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if idErr != nil {
			return nil, idErr
		}
		orderID = &oID
	}

	return fund.RestoreMovement(id, fundID, kind, kernel.Amount(dto.Amount), kernel.Amount(dto.BalanceBefore),
		kernel.Amount(dto.BalanceAfter), orderID, dto.Note, dto.CreatedAt)
}
