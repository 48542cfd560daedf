package jobs

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultAuditRetentionSchedule runs the sweep daily at 03:00, seconds field first.
const DefaultAuditRetentionSchedule = "0 0 3 * * *"

type AuditPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeAuditEventsCommand) (int64, error)
}

// AuditRetentionJob deletes audit events older than the retention period on
// a cron schedule.
type AuditRetentionJob struct {
	handler   AuditPurger
	retention time.Duration
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewAuditRetentionJob creates the job. Each run is bounded by timeout.
func NewAuditRetentionJob(
	handler AuditPurger,
	retention time.Duration,
	schedule string,
	timeout time.Duration,
	logger *zap.Logger,
) *AuditRetentionJob {
	if schedule == "" {
		schedule = DefaultAuditRetentionSchedule
	}
	return &AuditRetentionJob{
		handler:   handler,
		retention: retention,
		schedule:  schedule,
		timeout:   timeout,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "audit_retention_job")),
	}
}

// Start registers the sweep and starts the scheduler.
func (j *AuditRetentionJob) Start() error {
	if _, err := commands.NewPurgeAuditEventsCommand(j.retention); err != nil {
		return err
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.Error("audit retention sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("audit retention job started",
		zap.String("schedule", j.schedule),
		zap.Duration("retention", j.retention))
	return nil
}

// Run performs one sweep and returns the number of purged events.
func (j *AuditRetentionJob) Run(ctx context.Context) (int64, error) {
	cmd, err := commands.NewPurgeAuditEventsCommand(j.retention)
	if err != nil {
		return 0, err
	}
	return j.handler.Handle(ctx, cmd)
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *AuditRetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("audit retention job stopped")
}
