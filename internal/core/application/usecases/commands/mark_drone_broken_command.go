package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkDroneBrokenCommandIsNotConstructed = errors.New(
	"MarkDroneBrokenCommand must be created via a NewMarkDroneBroken* constructor",
)

// MarkDroneBrokenCommand represents a breakdown report. Drones report their
// own breakdown by external identity; administrators ground a drone by its id.
// Exactly one of the two addressing modes is set.
type MarkDroneBrokenCommand struct { //nolint:recvcheck //using for validation
	droneIdentity string
	droneID       *kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDroneBrokenCommand creates a breakdown report addressed by the
// drone's external identity (self-report).
func NewMarkDroneBrokenCommand(droneIdentity string) (MarkDroneBrokenCommand, error) {
	brokenCommand := MarkDroneBrokenCommand{
		guard: guard.NewConstructorGuard(),
	}

	if droneIdentity == "" {
		return MarkDroneBrokenCommand{}, ErrDroneIdentityIsRequired
	}

	brokenCommand.droneIdentity = droneIdentity
	return brokenCommand, nil
}

// NewMarkDroneBrokenByIDCommand creates a breakdown report addressed by the
// drone's unique identifier (administrative grounding).
func NewMarkDroneBrokenByIDCommand(droneID kernel.UUID) (MarkDroneBrokenCommand, error) {
	brokenCommand := MarkDroneBrokenCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := droneID.Validate(); err != nil {
		return MarkDroneBrokenCommand{}, err
	}

	brokenCommand.droneID = &droneID
	return brokenCommand, nil
}

// Validate ensures the command was created through a constructor.
// Returns ErrMarkDroneBrokenCommandIsNotConstructed if validation fails.
func (c MarkDroneBrokenCommand) Validate() error {
	return c.guard.Validate(ErrMarkDroneBrokenCommandIsNotConstructed)
}

// DroneIdentity returns the reporting drone's external identity, or "" when
// the command addresses the drone by id.
func (c MarkDroneBrokenCommand) DroneIdentity() string {
	return c.droneIdentity
}

// DroneID returns the target drone's identifier, or nil when the command
// addresses the drone by external identity.
func (c MarkDroneBrokenCommand) DroneID() *kernel.UUID {
	return c.droneID
}
