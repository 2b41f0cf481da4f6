package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// MarkOutcomeCommandHandler closes out an in-transit delivery.
// The order reaches its terminal state and the drone returns to Idle, ready
// to reserve the next job.
type MarkOutcomeCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewMarkOutcomeCommandHandler creates a handler for delivery outcome reports.
// Requires a UoWFactory for coordinating updates across both repositories.
func NewMarkOutcomeCommandHandler(uowFactory UoWFactory) MarkOutcomeCommandHandler {
	return MarkOutcomeCommandHandler{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes the outcome command.
// The drone must be carrying an in-transit order. On Delivered the package
// position becomes the destination and the delivery time is recorded; on
// Failed the position stays at the drone's last location. The drone is
// released to Idle either way. Returns the updated order.
func (h *MarkOutcomeCommandHandler) Handle(ctx context.Context, cmd MarkOutcomeCommand) (*order.Order, error) {
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

	if reportingDrone.CurrentOrder() == nil {
		return nil, errs.NewInvalidStateError("drone", reportingDrone.Status().String())
	}

	closedOrder, err := ordersRepo.Get(ctx, *reportingDrone.CurrentOrder())
	if err != nil {
		return nil, err
	}

	priorOrderStatus := closedOrder.Status()
	priorDroneStatus := reportingDrone.Status()

	switch cmd.Outcome() {
	case OutcomeDelivered:
		err = closedOrder.MarkDelivered(h.now())
	case OutcomeFailed:
		err = closedOrder.MarkFailed(reportingDrone.Location())
	}
	if err != nil {
		return nil, err
	}

	if err = reportingDrone.Release(); err != nil {
		return nil, err
	}

	// Keyed on the status each aggregate was read in; a concurrent breakdown
	// or withdrawal fails this request instead of being overwritten.
	if err = ordersRepo.UpdateIfStatus(ctx, closedOrder, priorOrderStatus); err != nil {
		return nil, err
	}

	if err = dronesRepo.UpdateIfStatus(ctx, reportingDrone, priorDroneStatus); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return closedOrder, nil
}
