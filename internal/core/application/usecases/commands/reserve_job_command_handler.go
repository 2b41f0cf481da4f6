package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/drone"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrNoPendingOrders signals that no delivery job is currently available for
// reservation.
var ErrNoPendingOrders = errors.New("no pending orders available")

// maxReserveAttempts bounds the retry loop when concurrent drones race for
// the same pending order. Each attempt re-selects the oldest pending order in
// a fresh transaction.
const maxReserveAttempts = 3

// ReserveJobCommandHandler matches an idle drone with the oldest pending order.
// The claim writes both aggregates with conditional updates keyed on their
// expected prior state (order still Pending, drone still Idle), so under
// contention exactly one drone wins and the rest retry against the next
// pending order or report no availability.
//
// Example:
//
//	handler := NewReserveJobCommandHandler(uowFactory)
//	cmd, _ := NewReserveJobCommand("drone-7")
//	reserved, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoPendingOrders):
//	    log.Println("Nothing to deliver")
//	case err != nil:
//	    log.Printf("Reservation failed: %v", err)
//	default:
//	    log.Printf("Reserved order %s", reserved.ID())
//	}
type ReserveJobCommandHandler struct {
	uowFactory UoWFactory
}

// NewReserveJobCommandHandler creates a handler for job reservation operations.
// Requires a UoWFactory for coordinating the atomic two-entity claim.
func NewReserveJobCommandHandler(uowFactory UoWFactory) ReserveJobCommandHandler {
	return ReserveJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the job reservation command.
// Resolves the drone (registering it on first contact), selects the oldest
// pending order and claims the pair with conditional updates. On a write
// conflict the selection is retried in a new transaction; when retries are
// exhausted or no pending order exists, ErrNoPendingOrders is returned.
func (h *ReserveJobCommandHandler) Handle(ctx context.Context, cmd ReserveJobCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		reserved, err := h.tryReserve(ctx, cmd.DroneIdentity())
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			continue
		}
		return reserved, err
	}

	return nil, ErrNoPendingOrders
}

// tryReserve performs one claim attempt in its own transaction.
func (h *ReserveJobCommandHandler) tryReserve(ctx context.Context, droneIdentity string) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	dronesRepo := uow.DroneRepository()

	claimingDrone, err := resolveDrone(ctx, dronesRepo, droneIdentity)
	if err != nil {
		return nil, err
	}

	if claimingDrone.Status() != drone.Idle {
		return nil, errs.NewInvalidStateError("drone", claimingDrone.Status().String())
	}

	pendingOrder, err := ordersRepo.GetFirstPending(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoPendingOrders
	}
	if err != nil {
		return nil, err
	}

	if err = pendingOrder.Reserve(claimingDrone.ID()); err != nil {
		return nil, err
	}

	if err = claimingDrone.Reserve(pendingOrder.ID()); err != nil {
		return nil, err
	}

	if err = ordersRepo.UpdateIfStatus(ctx, pendingOrder, order.Pending); err != nil {
		return nil, err
	}

	if err = dronesRepo.UpdateIfStatus(ctx, claimingDrone, drone.Idle); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pendingOrder, nil
}
