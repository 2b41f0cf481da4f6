// Package jobs provides scheduled background tasks for the dispatch system.
//
// Jobs are cron-based, using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StaleDroneJob - Periodically grounds drones whose last heartbeat is older
// than the configured staleness threshold. A grounded drone behaves exactly as
// if it had reported itself broken: its in-transit order fails and re-enters
// the pending pool as a handoff order.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(groundStaleDronesHandler, schedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick; a failed sweep never
// stops the scheduler.
package jobs
