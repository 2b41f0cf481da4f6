package commands

import (
	"context"
	"errors"
	"time"

	dronemodel "dispatch/internal/core/domain/model/drone"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UpdateDroneLocationCommandHandler handles drone position reports.
// Every report refreshes the drone's location and heartbeat; while the drone
// is carrying an in-transit order the order's package position and delivery
// estimate are refreshed as well.
type UpdateDroneLocationCommandHandler struct {
	uowFactory UoWFactory
	etaCalc    services.ETACalculator
	now        func() time.Time
}

// NewUpdateDroneLocationCommandHandler creates a handler for position reports.
// Requires a UoWFactory and the ETA calculator for in-transit estimate refreshes.
func NewUpdateDroneLocationCommandHandler(
	uowFactory UoWFactory,
	etaCalc services.ETACalculator,
) UpdateDroneLocationCommandHandler {
	return UpdateDroneLocationCommandHandler{
		uowFactory: uowFactory,
		etaCalc:    etaCalc,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes the position report.
// Moves the drone, stamps the heartbeat and, when the drone is in transit,
// recomputes the carried order's delivery estimate from the new position.
// Returns the updated drone.
func (h *UpdateDroneLocationCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDroneLocationCommand,
) (*dronemodel.Drone, error) {
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

	ordersRepo := uow.OrderRepository()
	dronesRepo := uow.DroneRepository()

	reportingDrone, err := resolveDrone(ctx, dronesRepo, cmd.DroneIdentity())
	if err != nil {
		return nil, err
	}

	now := h.now()
	if err = reportingDrone.MoveTo(cmd.Location(), now); err != nil {
		return nil, err
	}

	// Write the order row before the drone row, matching the lock order of
	// every other two-aggregate command.
	if reportingDrone.Status() == dronemodel.InTransit && reportingDrone.CurrentOrder() != nil {
		if err = h.refreshTransit(ctx, ordersRepo, reportingDrone, now); err != nil {
			return nil, err
		}
	}

	if err = dronesRepo.Update(ctx, reportingDrone); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return reportingDrone, nil
}

// refreshTransit recomputes the carried order's package position and delivery
// estimate. The write is keyed on the order still being InTransit; when the
// order was closed by a concurrent request the refresh is skipped and the
// position report still counts as a heartbeat.
func (h *UpdateDroneLocationCommandHandler) refreshTransit(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	reportingDrone *dronemodel.Drone,
	now time.Time,
) error {
	carriedOrder, err := ordersRepo.Get(ctx, *reportingDrone.CurrentOrder())
	if err != nil {
		return err
	}

	if carriedOrder.Status() != order.InTransit {
		return nil
	}

	eta, err := h.etaCalc.EstimateArrival(now, reportingDrone.Location(), carriedOrder.Destination())
	if err != nil {
		return err
	}

	if err = carriedOrder.UpdateTransit(reportingDrone.Location(), eta); err != nil {
		return err
	}

	err = ordersRepo.UpdateIfStatus(ctx, carriedOrder, order.InTransit)
	if errors.Is(err, errs.ErrConcurrencyConflict) {
		return nil
	}

	return err
}
