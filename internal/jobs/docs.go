// Package jobs provides scheduled background tasks for the order management service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OrderExpiryJob moves NEW and PARTIAL orders whose valid-until time has passed
// to EXPIRED status.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireOrdersHandler, config.OrderExpirySchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field. The expiry job
// defaults to "0 * * * * *", once a minute. Overlapping runs are skipped.
//
// # Error Handling
//
// Failed runs are logged at ERROR and retried by the next scheduled run.
// Failed job starts are reported by StartAll.
package jobs
