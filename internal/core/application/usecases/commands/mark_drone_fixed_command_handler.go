package commands

import (
	"context"

	"dispatch/internal/core/domain/model/drone"
)

// MarkDroneFixedCommandHandler returns a repaired drone to service.
// Only Broken drones can be fixed; the drone re-enters the Idle pool.
type MarkDroneFixedCommandHandler struct {
	uowFactory DroneUoWFactory
}

// NewMarkDroneFixedCommandHandler creates a handler for repair operations.
// Requires a DroneUoWFactory for transactional persistence.
func NewMarkDroneFixedCommandHandler(uowFactory DroneUoWFactory) MarkDroneFixedCommandHandler {
	return MarkDroneFixedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the repair command.
// Returns errs.InvalidStateError when the drone is not Broken, and the
// updated drone on success.
func (h *MarkDroneFixedCommandHandler) Handle(ctx context.Context, cmd MarkDroneFixedCommand) (*drone.Drone, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	dronesRepo := uow.DroneRepository()

	fixedDrone, err := dronesRepo.Get(ctx, cmd.DroneID())
	if err != nil {
		return nil, err
	}

	if err = fixedDrone.MarkFixed(); err != nil {
		return nil, err
	}

	if err = dronesRepo.Update(ctx, fixedDrone); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return fixedDrone, nil
}
