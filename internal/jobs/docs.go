// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and are managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager()
//	jobManager.Add("audit retention", jobs.NewAuditRetentionJob(purgeHandler, 90*24*time.Hour, "", time.Minute, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// AuditRetentionJob purges audit events older than the configured retention.
// The default schedule is DefaultAuditRetentionSchedule. A failed sweep is
// logged and retried at the next tick.
package jobs
