package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGroundStaleDronesCommandIsNotConstructed = errors.New(
	"GroundStaleDronesCommand must be created via NewGroundStaleDronesCommand constructor",
)

// GroundStaleDronesCommand triggers a sweep over drones whose heartbeat has
// gone silent. Issued by the scheduler, not by callers.
type GroundStaleDronesCommand struct {
	guard guard.ConstructorGuard
}

// NewGroundStaleDronesCommand creates a command to sweep silent drones.
func NewGroundStaleDronesCommand() GroundStaleDronesCommand {
	return GroundStaleDronesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrGroundStaleDronesCommandIsNotConstructed if validation fails.
func (c *GroundStaleDronesCommand) Validate() error {
	return c.guard.Validate(
		ErrGroundStaleDronesCommandIsNotConstructed,
	)
}
