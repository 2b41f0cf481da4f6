package cmd

import "time"

// Config carries all runtime settings, loaded from the environment by the
// application entrypoint.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	JWTSecret  string

	// CruiseSpeedKmPerHour is the fleet-wide drone speed used for delivery
	// estimates.
	CruiseSpeedKmPerHour float64

	// HeartbeatThreshold is how long a drone may stay silent before the
	// stale sweep grounds it.
	HeartbeatThreshold time.Duration

	// StaleSweepSchedule is a cron expression (with seconds) for the stale
	// drone sweep.
	StaleSweepSchedule string
}
