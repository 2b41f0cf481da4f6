package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleDroneJob *StaleDroneJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	groundStaleDronesHandler commands.GroundStaleDronesCommandHandler,
	staleSweepSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleDroneJob: NewStaleDroneJob(groundStaleDronesHandler, staleSweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleDroneJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale drone sweep: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleDroneJob.Stop()
}
