package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDroneLocationCommandIsNotConstructed = errors.New(
	"UpdateDroneLocationCommand must be created via NewUpdateDroneLocationCommand constructor",
)

// UpdateDroneLocationCommand represents a drone's periodic position report.
// Doubles as the liveness heartbeat.
type UpdateDroneLocationCommand struct { //nolint:recvcheck //using for validation
	droneIdentity string
	location      kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateDroneLocationCommand creates a command carrying a drone position report.
func NewUpdateDroneLocationCommand(
	droneIdentity string,
	location kernel.Location,
) (UpdateDroneLocationCommand, error) {
	locationCommand := UpdateDroneLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		locationCommand.setDroneIdentity(droneIdentity),
		locationCommand.setLocation(location),
	); err != nil {
		return UpdateDroneLocationCommand{}, err
	}

	return locationCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDroneLocationCommandIsNotConstructed if validation fails.
func (c UpdateDroneLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDroneLocationCommandIsNotConstructed)
}

// DroneIdentity returns the external identity of the reporting drone.
func (c UpdateDroneLocationCommand) DroneIdentity() string {
	return c.droneIdentity
}

// Location returns the reported position.
func (c UpdateDroneLocationCommand) Location() kernel.Location {
	return c.location
}

func (c *UpdateDroneLocationCommand) setDroneIdentity(droneIdentity string) error {
	if droneIdentity == "" {
		return ErrDroneIdentityIsRequired
	}

	c.droneIdentity = droneIdentity
	return nil
}

func (c *UpdateDroneLocationCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
