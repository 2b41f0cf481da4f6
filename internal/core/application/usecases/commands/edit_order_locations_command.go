package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrEditOrderLocationsCommandIsNotConstructed = errors.New(
		"EditOrderLocationsCommand must be created via NewEditOrderLocationsCommand constructor",
	)
	ErrNoLocationsToEdit = errors.New("at least one of origin or destination must be provided")
)

// EditOrderLocationsCommand represents an administrative request to change an
// order's pickup and/or dropoff location. Either field may be nil, but not both.
type EditOrderLocationsCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	origin      *kernel.Location
	destination *kernel.Location

	guard guard.ConstructorGuard
}

// NewEditOrderLocationsCommand creates a command to change an order's locations.
// A nil origin or destination leaves the corresponding field unchanged;
// passing both as nil is rejected.
func NewEditOrderLocationsCommand(
	orderID kernel.UUID,
	origin *kernel.Location,
	destination *kernel.Location,
) (EditOrderLocationsCommand, error) {
	editCommand := EditOrderLocationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		editCommand.setOrderID(orderID),
		editCommand.setLocations(origin, destination),
	); err != nil {
		return EditOrderLocationsCommand{}, err
	}

	return editCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrEditOrderLocationsCommandIsNotConstructed if validation fails.
func (c EditOrderLocationsCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderLocationsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to edit.
func (c EditOrderLocationsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Origin returns the replacement pickup location, or nil to keep the current one.
func (c EditOrderLocationsCommand) Origin() *kernel.Location {
	return c.origin
}

// Destination returns the replacement dropoff location, or nil to keep the current one.
func (c EditOrderLocationsCommand) Destination() *kernel.Location {
	return c.destination
}

func (c *EditOrderLocationsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *EditOrderLocationsCommand) setLocations(origin *kernel.Location, destination *kernel.Location) error {
	if origin == nil && destination == nil {
		return ErrNoLocationsToEdit
	}

	if origin != nil {
		if err := origin.Validate(); err != nil {
			return err
		}
	}

	if destination != nil {
		if err := destination.Validate(); err != nil {
			return err
		}
	}

	c.origin = origin
	c.destination = destination
	return nil
}
