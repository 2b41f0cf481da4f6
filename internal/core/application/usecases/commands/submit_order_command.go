package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrOwnerIsRequired = errors.New("owner is required")
)

// SubmitOrderCommand represents a request to place a new delivery order.
// Encapsulates the ordering identity and the pickup/dropoff locations.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewSubmitOrderCommand(orderID, "alice", origin, destination)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	owner       string
	origin      kernel.Location
	destination kernel.Location

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to place a new delivery order.
// Validates that the order ID, owner identity and both locations are valid.
func NewSubmitOrderCommand(
	orderID kernel.UUID,
	owner string,
	origin kernel.Location,
	destination kernel.Location,
) (SubmitOrderCommand, error) {
	submitCommand := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		submitCommand.setOrderID(orderID),
		submitCommand.setOwner(owner),
		submitCommand.setOrigin(origin),
		submitCommand.setDestination(destination),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return submitCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitOrderCommandIsNotConstructed if validation fails.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Owner returns the identity the order is placed on behalf of.
func (c SubmitOrderCommand) Owner() string {
	return c.owner
}

// Origin returns the pickup location.
func (c SubmitOrderCommand) Origin() kernel.Location {
	return c.origin
}

// Destination returns the dropoff location.
func (c SubmitOrderCommand) Destination() kernel.Location {
	return c.destination
}

func (c *SubmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setOwner(owner string) error {
	if owner == "" {
		return ErrOwnerIsRequired
	}

	c.owner = owner
	return nil
}

func (c *SubmitOrderCommand) setOrigin(origin kernel.Location) error {
	if err := origin.Validate(); err != nil {
		return err
	}

	c.origin = origin
	return nil
}

func (c *SubmitOrderCommand) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}
