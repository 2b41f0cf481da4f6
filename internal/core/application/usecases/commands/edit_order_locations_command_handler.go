package commands

import (
	"context"
)

// EditOrderLocationsCommandHandler handles administrative location changes.
// Only Pending orders may be edited; once a drone has reserved the order its
// locations are fixed.
type EditOrderLocationsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewEditOrderLocationsCommandHandler creates a handler for order location edits.
// Requires an OrderUoWFactory for transactional persistence.
func NewEditOrderLocationsCommandHandler(uowFactory OrderUoWFactory) EditOrderLocationsCommandHandler {
	return EditOrderLocationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location edit command.
// Loads the order, applies the requested changes and persists the result.
// Returns errs.InvalidStateError when the order is no longer Pending.
func (h *EditOrderLocationsCommandHandler) Handle(ctx context.Context, cmd EditOrderLocationsCommand) error {
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

	editedOrder, err := ordersRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	priorStatus := editedOrder.Status()
	if err = editedOrder.EditLocations(cmd.Origin(), cmd.Destination()); err != nil {
		return err
	}

	// Keyed on the status the order was read in, so a reservation committed
	// by a concurrent drone is not overwritten.
	if err = ordersRepo.UpdateIfStatus(ctx, editedOrder, priorStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
