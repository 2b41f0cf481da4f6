package commands

import (
	"context"

	"dispatch/internal/core/domain/model/drone"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// MarkDroneBrokenCommandHandler handles drone breakdown reports.
// A broken drone is grounded and its delivery, if any, is recovered: an
// in-transit order fails and spawns a handoff order at the breakdown point;
// a merely reserved order is detached back into the pending pool.
//
// Example:
//
//	handler := NewMarkDroneBrokenCommandHandler(uowFactory)
//	cmd, _ := NewMarkDroneBrokenCommand("drone-7")
//	grounded, handoff, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if handoff != nil {
//	    log.Printf("delivery resumes as order %s", handoff.ID())
//	}
type MarkDroneBrokenCommandHandler struct {
	uowFactory UoWFactory
}

// NewMarkDroneBrokenCommandHandler creates a handler for breakdown reports.
// Requires a UoWFactory for coordinating the drone and order updates.
func NewMarkDroneBrokenCommandHandler(uowFactory UoWFactory) MarkDroneBrokenCommandHandler {
	return MarkDroneBrokenCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the breakdown report.
// Grounds the drone and recovers its delivery within one transaction.
// Returns the grounded drone and the handoff order, which is nil unless the
// drone was in transit.
func (h *MarkDroneBrokenCommandHandler) Handle(
	ctx context.Context,
	cmd MarkDroneBrokenCommand,
) (*drone.Drone, *order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	dronesRepo := uow.DroneRepository()

	var brokenDrone *drone.Drone
	var err error
	if cmd.DroneID() != nil {
		brokenDrone, err = dronesRepo.Get(ctx, *cmd.DroneID())
	} else {
		brokenDrone, err = resolveDrone(ctx, dronesRepo, cmd.DroneIdentity())
	}
	if err != nil {
		return nil, nil, err
	}

	handoffOrder, err := groundDrone(ctx, ordersRepo, dronesRepo, brokenDrone)
	if err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return brokenDrone, handoffOrder, nil
}

// groundDrone transitions a drone to Broken and recovers its delivery.
// An in-transit order is failed at the drone's last position and replaced by
// a fresh Pending handoff order; a reserved order is detached back to
// Pending. Shared by breakdown reports and the stale-heartbeat sweep so both
// paths recover identically.
func groundDrone(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	dronesRepo ports.DroneRepository,
	brokenDrone *drone.Drone,
) (*order.Order, error) {
	var handoffOrder *order.Order

	if currentOrderID := brokenDrone.CurrentOrder(); currentOrderID != nil {
		abandonedOrder, err := ordersRepo.Get(ctx, *currentOrderID)
		if err != nil {
			return nil, err
		}

		priorOrderStatus := abandonedOrder.Status()

		switch abandonedOrder.Status() {
		case order.InTransit:
			handoffOrder, err = order.NewHandoffOrder(kernel.NewUUID(), abandonedOrder, brokenDrone.Location())
			if err != nil {
				return nil, err
			}

			if err = abandonedOrder.MarkFailed(brokenDrone.Location()); err != nil {
				return nil, err
			}
		case order.Reserved:
			if err = abandonedOrder.Detach(); err != nil {
				return nil, err
			}
		}

		// Keyed on the status the order was read in; a concurrently committed
		// pickup or outcome fails this request instead of being overwritten.
		if err = ordersRepo.UpdateIfStatus(ctx, abandonedOrder, priorOrderStatus); err != nil {
			return nil, err
		}

		if handoffOrder != nil {
			if err = ordersRepo.Add(ctx, handoffOrder); err != nil {
				return nil, err
			}
		}
	}

	priorDroneStatus := brokenDrone.Status()

	if err := brokenDrone.MarkBroken(); err != nil {
		return nil, err
	}

	if err := dronesRepo.UpdateIfStatus(ctx, brokenDrone, priorDroneStatus); err != nil {
		return nil, err
	}

	return handoffOrder, nil
}
