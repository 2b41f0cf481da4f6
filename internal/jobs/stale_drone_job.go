package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleDroneJob periodically grounds drones whose heartbeat has gone quiet,
// handing their in-flight orders back to the pending pool.
type StaleDroneJob struct {
	handler  commands.GroundStaleDronesCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleDroneJob creates the stale drone sweep. The schedule is a cron
// expression with a seconds field.
func NewStaleDroneJob(
	handler commands.GroundStaleDronesCommandHandler,
	schedule string,
	logger *slog.Logger,
) *StaleDroneJob {
	return &StaleDroneJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_drone_job"),
	}
}

// Start begins the sweep on the configured schedule.
func (j *StaleDroneJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewGroundStaleDronesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stale drone sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale drone sweep started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *StaleDroneJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale drone sweep stopped")
}
