package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrReserveJobCommandIsNotConstructed = errors.New(
		"ReserveJobCommand must be created via NewReserveJobCommand constructor",
	)
	ErrDroneIdentityIsRequired = errors.New("drone identity is required")
)

// ReserveJobCommand represents a drone's request to claim the next pending
// delivery. The drone is addressed by the identity it authenticates with.
type ReserveJobCommand struct { //nolint:recvcheck //using for validation
	droneIdentity string

	guard guard.ConstructorGuard
}

// NewReserveJobCommand creates a command for a drone to claim a delivery job.
func NewReserveJobCommand(droneIdentity string) (ReserveJobCommand, error) {
	reserveCommand := ReserveJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := reserveCommand.setDroneIdentity(droneIdentity); err != nil {
		return ReserveJobCommand{}, err
	}

	return reserveCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReserveJobCommandIsNotConstructed if validation fails.
func (c ReserveJobCommand) Validate() error {
	return c.guard.Validate(ErrReserveJobCommandIsNotConstructed)
}

// DroneIdentity returns the external identity of the requesting drone.
func (c ReserveJobCommand) DroneIdentity() string {
	return c.droneIdentity
}

func (c *ReserveJobCommand) setDroneIdentity(droneIdentity string) error {
	if droneIdentity == "" {
		return ErrDroneIdentityIsRequired
	}

	c.droneIdentity = droneIdentity
	return nil
}
