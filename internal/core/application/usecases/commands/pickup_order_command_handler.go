package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// PickupOrderCommandHandler handles a drone's pickup report.
// Moves the reserved order into transit, stamping the pickup time, the
// package's starting position and the initial delivery estimate.
type PickupOrderCommandHandler struct {
	uowFactory UoWFactory
	etaCalc    services.ETACalculator
	now        func() time.Time
}

// NewPickupOrderCommandHandler creates a handler for pickup operations.
// Requires a UoWFactory and the ETA calculator for the initial delivery estimate.
func NewPickupOrderCommandHandler(uowFactory UoWFactory, etaCalc services.ETACalculator) PickupOrderCommandHandler {
	return PickupOrderCommandHandler{
		uowFactory: uowFactory,
		etaCalc:    etaCalc,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes the pickup command.
// The drone must hold a Reserved order; both aggregates move to InTransit in
// a single transaction. Returns the updated order.
func (h *PickupOrderCommandHandler) Handle(ctx context.Context, cmd PickupOrderCommand) (*order.Order, error) {
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

	carryingDrone, err := resolveDrone(ctx, dronesRepo, cmd.DroneIdentity())
	if err != nil {
		return nil, err
	}

	if carryingDrone.CurrentOrder() == nil {
		return nil, errs.NewInvalidStateError("drone", carryingDrone.Status().String())
	}

	pickedOrder, err := ordersRepo.Get(ctx, *carryingDrone.CurrentOrder())
	if err != nil {
		return nil, err
	}

	now := h.now()
	eta, err := h.etaCalc.EstimateArrival(now, carryingDrone.Location(), pickedOrder.Destination())
	if err != nil {
		return nil, err
	}

	priorOrderStatus := pickedOrder.Status()
	priorDroneStatus := carryingDrone.Status()

	if err = pickedOrder.Pickup(now, carryingDrone.Location(), eta); err != nil {
		return nil, err
	}

	if err = carryingDrone.StartTransit(); err != nil {
		return nil, err
	}

	// Both writes are keyed on the status each aggregate was read in; a
	// concurrent withdrawal or breakdown fails this request instead of being
	// overwritten.
	if err = ordersRepo.UpdateIfStatus(ctx, pickedOrder, priorOrderStatus); err != nil {
		return nil, err
	}

	if err = dronesRepo.UpdateIfStatus(ctx, carryingDrone, priorDroneStatus); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pickedOrder, nil
}
