package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkDroneFixedCommandIsNotConstructed = errors.New(
	"MarkDroneFixedCommand must be created via NewMarkDroneFixedCommand constructor",
)

// MarkDroneFixedCommand represents an administrative request to return a
// repaired drone to service.
type MarkDroneFixedCommand struct { //nolint:recvcheck //using for validation
	droneID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDroneFixedCommand creates a command to return a repaired drone to service.
func NewMarkDroneFixedCommand(droneID kernel.UUID) (MarkDroneFixedCommand, error) {
	fixedCommand := MarkDroneFixedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := fixedCommand.setDroneID(droneID); err != nil {
		return MarkDroneFixedCommand{}, err
	}

	return fixedCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkDroneFixedCommandIsNotConstructed if validation fails.
func (c MarkDroneFixedCommand) Validate() error {
	return c.guard.Validate(ErrMarkDroneFixedCommandIsNotConstructed)
}

// DroneID returns the identifier of the repaired drone.
func (c MarkDroneFixedCommand) DroneID() kernel.UUID {
	return c.droneID
}

func (c *MarkDroneFixedCommand) setDroneID(droneID kernel.UUID) error {
	if err := droneID.Validate(); err != nil {
		return err
	}

	c.droneID = droneID
	return nil
}
