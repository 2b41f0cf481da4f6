package commands

import (
	"context"
	"time"
)

// DefaultHeartbeatThreshold is how long a drone may stay silent before the
// sweep considers it lost and grounds it.
const DefaultHeartbeatThreshold = 5 * time.Minute

// GroundStaleDronesCommandHandler sweeps drones whose heartbeat has gone
// silent for longer than the configured threshold. Each stale drone is
// grounded exactly as if it had reported a breakdown itself, so in-transit
// deliveries are handed off to the pending pool instead of being lost with
// the drone.
type GroundStaleDronesCommandHandler struct {
	uowFactory UoWFactory
	threshold  time.Duration
	now        func() time.Time
}

// NewGroundStaleDronesCommandHandler creates a handler for the stale sweep.
// A non-positive threshold falls back to DefaultHeartbeatThreshold.
func NewGroundStaleDronesCommandHandler(
	uowFactory UoWFactory,
	threshold time.Duration,
) GroundStaleDronesCommandHandler {
	if threshold <= 0 {
		threshold = DefaultHeartbeatThreshold
	}

	return GroundStaleDronesCommandHandler{
		uowFactory: uowFactory,
		threshold:  threshold,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes the sweep command.
// Grounds every drone whose last heartbeat is older than the threshold,
// recovering each drone's delivery within a single transaction.
func (h *GroundStaleDronesCommandHandler) Handle(ctx context.Context, cmd GroundStaleDronesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	dronesRepo := uow.DroneRepository()

	cutoff := h.now().Add(-h.threshold)
	staleDrones, err := dronesRepo.GetStale(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, staleDrone := range staleDrones {
		if _, err = groundDrone(ctx, ordersRepo, dronesRepo, staleDrone); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
