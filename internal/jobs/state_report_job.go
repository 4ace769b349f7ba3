package jobs

import (
	"context"
	"log/slog"
	"sync"

	"cafe/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultStateReportSchedule runs the report every 30 seconds.
const DefaultStateReportSchedule = "*/30 * * * * *"

// StateReportJob periodically logs a summary of the cafe: connected
// customers, customers waiting for orders, items per stage and scheduler
// counters. A report identical to
// the previous one is skipped.
type StateReportJob struct {
	handler  queries.GetCafeStateQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu   sync.Mutex
	last *stateSummary
}

type stateSummary struct {
	customers int
	active    int
	waiting   int
	preparing int
	ready     int
	completed int64
	discarded int64
}

// NewStateReportJob creates the job. schedule is a six-field cron expression
// (with seconds) or a descriptor such as "@every 1m".
func NewStateReportJob(handler queries.GetCafeStateQueryHandler, schedule string, logger *slog.Logger) *StateReportJob {
	return &StateReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "state_report_job"),
	}
}

// Start registers the report with cron and starts it.
func (j *StateReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Report(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "State report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the cron scheduler and waits for a running report to finish.
func (j *StateReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "State report job stopped")
}

// Report logs the current state once. It reports whether anything was logged.
func (j *StateReportJob) Report(ctx context.Context) bool {
	state, err := j.handler.Handle(ctx, queries.NewGetCafeStateQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "State report failed", "error", err)
		return false
	}

	summary := stateSummary{
		customers: len(state.Sessions),
		active:    state.ActiveCustomers,
		waiting:   state.Waiting,
		preparing: state.Preparing,
		ready:     state.Ready,
		completed: state.Scheduler.Completed,
		discarded: state.Scheduler.Discarded,
	}

	j.mu.Lock()
	unchanged := j.last != nil && *j.last == summary
	j.last = &summary
	j.mu.Unlock()
	if unchanged {
		return false
	}

	j.logger.InfoContext(ctx, "Cafe state",
		"customers", summary.customers,
		"waiting_customers", summary.active,
		"waiting_area", summary.waiting,
		"brewing_area", summary.preparing,
		"tray_area", summary.ready,
		"capacity", state.Capacity,
		"completed", summary.completed,
		"discarded", summary.discarded,
	)
	return true
}
