package jobs

import (
	"context"
	"log/slog"

	"oms/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOrderExpirySchedule runs the expiry job at the start of every minute.
const DefaultOrderExpirySchedule = "0 * * * * *"

// OrderExpirer expires orders whose validity has ended.
type OrderExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireOrdersCommand) (int, error)
}

// OrderExpiryJob periodically moves active orders past their valid-until time to EXPIRED.
// A run that is still in progress when the next one is due causes that run to be skipped.
type OrderExpiryJob struct {
	handler  OrderExpirer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderExpiryJob creates the job. schedule is a cron expression with a seconds
// field; an empty schedule means DefaultOrderExpirySchedule.
func NewOrderExpiryJob(handler OrderExpirer, schedule string, logger *slog.Logger) *OrderExpiryJob {
	if schedule == "" {
		schedule = DefaultOrderExpirySchedule
	}
	return &OrderExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "order_expiry_job"),
	}
}

// Start registers the job with the scheduler and starts it.
func (j *OrderExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single expiry pass and reports how many orders expired.
// Failures are logged; the next scheduled run retries.
func (j *OrderExpiryJob) RunOnce(ctx context.Context) int {
	expired, err := j.handler.Handle(ctx, commands.NewExpireOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order expiry job failed", "error", err)
		return 0
	}
	return expired
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *OrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
