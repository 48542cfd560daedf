package commands

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type PurgeAuditEventsCommandHandler struct {
	uowFactory AuditUoWFactory
	logger     *zap.Logger
}

func NewPurgeAuditEventsCommandHandler(uowFactory AuditUoWFactory, logger *zap.Logger) *PurgeAuditEventsCommandHandler {
	return &PurgeAuditEventsCommandHandler{uowFactory: uowFactory, logger: logger}
}

// Handle returns the number of events removed.
func (h *PurgeAuditEventsCommandHandler) Handle(ctx context.Context, cmd PurgeAuditEventsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	cutoff := time.Now().UTC().Add(-cmd.Retention())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.AuditRepository().PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.logger.Info("audit events purged",
		zap.Time("cutoff", cutoff),
		zap.Int64("purged", purged))
	return purged, nil
}
