package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

// Outcome is the terminal result a drone reports for its in-transit delivery.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
)

var (
	ErrMarkOutcomeCommandIsNotConstructed = errors.New(
		"MarkOutcomeCommand must be created via NewMarkOutcomeCommand constructor",
	)
	ErrOutcomeIsInvalid = errors.New("outcome must be delivered or failed")
)

// MarkOutcomeCommand represents a drone's report of the delivery result for
// its current in-transit order.
type MarkOutcomeCommand struct { //nolint:recvcheck //using for validation
	droneIdentity string
	outcome       Outcome

	guard guard.ConstructorGuard
}

// NewMarkOutcomeCommand creates a command reporting a delivery outcome.
func NewMarkOutcomeCommand(droneIdentity string, outcome Outcome) (MarkOutcomeCommand, error) {
	outcomeCommand := MarkOutcomeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		outcomeCommand.setDroneIdentity(droneIdentity),
		outcomeCommand.setOutcome(outcome),
	); err != nil {
		return MarkOutcomeCommand{}, err
	}

	return outcomeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkOutcomeCommandIsNotConstructed if validation fails.
func (c MarkOutcomeCommand) Validate() error {
	return c.guard.Validate(ErrMarkOutcomeCommandIsNotConstructed)
}

// DroneIdentity returns the external identity of the reporting drone.
func (c MarkOutcomeCommand) DroneIdentity() string {
	return c.droneIdentity
}

// Outcome returns the reported delivery result.
func (c MarkOutcomeCommand) Outcome() Outcome {
	return c.outcome
}

func (c *MarkOutcomeCommand) setDroneIdentity(droneIdentity string) error {
	if droneIdentity == "" {
		return ErrDroneIdentityIsRequired
	}

	c.droneIdentity = droneIdentity
	return nil
}

func (c *MarkOutcomeCommand) setOutcome(outcome Outcome) error {
	if outcome != OutcomeDelivered && outcome != OutcomeFailed {
		return ErrOutcomeIsInvalid
	}

	c.outcome = outcome
	return nil
}
