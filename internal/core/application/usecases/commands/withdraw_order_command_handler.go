package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// WithdrawOrderCommandHandler handles owner-initiated order cancellation.
// Withdrawing a Reserved order also releases the assigned drone back to Idle,
// so both aggregates are updated within one transaction.
type WithdrawOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewWithdrawOrderCommandHandler creates a handler for order withdrawal operations.
// Requires a UoWFactory for coordinating updates across order and drone repositories.
func NewWithdrawOrderCommandHandler(uowFactory UoWFactory) WithdrawOrderCommandHandler {
	return WithdrawOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order withdrawal command.
// Verifies ownership, transitions the order to Withdrawn and, if a drone was
// assigned, releases it back to Idle. Returns errs.ForbiddenError when the
// caller does not own the order and errs.ConcurrencyConflictError when either
// aggregate changed under a concurrent request.
func (h *WithdrawOrderCommandHandler) Handle(ctx context.Context, cmd WithdrawOrderCommand) error {
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

	withdrawnOrder, err := ordersRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !withdrawnOrder.IsOwnedBy(cmd.Owner()) {
		return errs.NewForbiddenError("order")
	}

	assignedDrone := withdrawnOrder.AssignedDrone()
	priorOrderStatus := withdrawnOrder.Status()

	if err = withdrawnOrder.Withdraw(); err != nil {
		return err
	}

	// Conditional writes keyed on the status each aggregate was read in, so a
	// transition committed by a concurrent request fails this one instead of
	// being silently overwritten.
	if err = ordersRepo.UpdateIfStatus(ctx, withdrawnOrder, priorOrderStatus); err != nil {
		return err
	}

	if assignedDrone != nil {
		releasedDrone, droneErr := dronesRepo.Get(ctx, *assignedDrone)
		if droneErr != nil {
			return droneErr
		}

		priorDroneStatus := releasedDrone.Status()

		if err = releasedDrone.Release(); err != nil {
			return err
		}

		if err = dronesRepo.UpdateIfStatus(ctx, releasedDrone, priorDroneStatus); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
