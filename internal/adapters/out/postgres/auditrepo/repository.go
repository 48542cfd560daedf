package auditrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditRepository implements ports.AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts events in one statement.
func (r *GormAuditRepository) Append(ctx context.Context, events ...*audit.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		if e == nil {
			return errs.NewValueIsRequiredError("audit event")
		}
		dtos = append(dtos, fromDomain(e))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormAuditRepository) Find(ctx context.Context, filter audit.Filter) ([]*audit.Event, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&EventDTO{})
	if filter.SubjectID != nil {
		q = q.Where("subject_id = ?", filter.SubjectID.Bytes())
	}
	if filter.ActorID != nil {
		q = q.Where("actor_id = ?", filter.ActorID.Bytes())
	}
	if filter.From != nil {
		q = q.Where("occurred_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("occurred_at < ?", filter.To.UTC())
	}
	if filter.CriticalOnly {
		q = q.Where("critical = ?", true)
	}

	var dtos []EventDTO
	if err := q.Order("occurred_at").Order("id").Limit(filter.EffectiveLimit()).Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*audit.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *GormAuditRepository) CountByOrder(ctx context.Context, orderID kernel.UUID) (int64, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	return count, err
}

type latencyRow struct {
	KitchenID   uuid.UUID
	Transitions int
	MeanNs      float64
}

// MeanLatencyByKitchen skips creation events: they have no previous status
// and measure no kitchen work.
func (r *GormAuditRepository) MeanLatencyByKitchen(ctx context.Context, kitchenID *kernel.UUID) ([]audit.KitchenLatency, error) {
	q := r.db.WithContext(ctx).Model(&EventDTO{}).
		Select("kitchen_id, COUNT(*) AS transitions, CAST(AVG(elapsed_ns) AS DOUBLE PRECISION) AS mean_ns").
		Where("subject_kind = ? AND previous_status <> ''", string(audit.SubjectSubOrder))
	if kitchenID != nil {
		if err := kitchenID.Validate(); err != nil {
			return nil, err
		}
		q = q.Where("kitchen_id = ?", kitchenID.Bytes())
	}

	var rows []latencyRow
	if err := q.Group("kitchen_id").Order("kitchen_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]audit.KitchenLatency, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.KitchenID[:])
		if err != nil {
			return nil, err
		}
		result = append(result, audit.KitchenLatency{
			KitchenID:   id,
			Transitions: row.Transitions,
			Mean:        time.Duration(row.MeanNs),
		})
	}
	return result, nil
}

func (r *GormAuditRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("occurred_at < ?", cutoff.UTC()).Delete(&EventDTO{})
	return result.RowsAffected, result.Error
}
