package jobs

import (
	"fmt"
	"log/slog"

	"cafe/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stateReportJob *StateReportJob
}

// NewJobManager creates a new job manager with all required jobs.
// An empty schedule selects DefaultStateReportSchedule.
func NewJobManager(
	getCafeStateHandler queries.GetCafeStateQueryHandler,
	stateReportSchedule string,
	logger *slog.Logger,
) *JobManager {
	if stateReportSchedule == "" {
		stateReportSchedule = DefaultStateReportSchedule
	}
	return &JobManager{
		stateReportJob: NewStateReportJob(getCafeStateHandler, stateReportSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stateReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start state report job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stateReportJob.Stop()
}
