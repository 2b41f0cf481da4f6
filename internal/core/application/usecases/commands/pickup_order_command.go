package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

// SourceKind distinguishes where a pickup happens: at the order's original
// origin or at a handoff point left by a broken drone. It does not change the
// state transition.
type SourceKind string

const (
	SourceOrigin  SourceKind = "origin"
	SourceHandoff SourceKind = "handoff"
)

var (
	ErrPickupOrderCommandIsNotConstructed = errors.New(
		"PickupOrderCommand must be created via NewPickupOrderCommand constructor",
	)
	ErrSourceKindIsInvalid = errors.New("source kind must be origin or handoff")
)

// PickupOrderCommand represents a drone's report that it has collected the
// package for its reserved order.
type PickupOrderCommand struct { //nolint:recvcheck //using for validation
	droneIdentity string
	sourceKind    SourceKind

	guard guard.ConstructorGuard
}

// NewPickupOrderCommand creates a command reporting a package pickup.
func NewPickupOrderCommand(droneIdentity string, sourceKind SourceKind) (PickupOrderCommand, error) {
	pickupCommand := PickupOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pickupCommand.setDroneIdentity(droneIdentity),
		pickupCommand.setSourceKind(sourceKind),
	); err != nil {
		return PickupOrderCommand{}, err
	}

	return pickupCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPickupOrderCommandIsNotConstructed if validation fails.
func (c PickupOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickupOrderCommandIsNotConstructed)
}

// DroneIdentity returns the external identity of the reporting drone.
func (c PickupOrderCommand) DroneIdentity() string {
	return c.droneIdentity
}

// SourceKind returns whether the pickup happened at the origin or a handoff point.
func (c PickupOrderCommand) SourceKind() SourceKind {
	return c.sourceKind
}

func (c *PickupOrderCommand) setDroneIdentity(droneIdentity string) error {
	if droneIdentity == "" {
		return ErrDroneIdentityIsRequired
	}

	c.droneIdentity = droneIdentity
	return nil
}

func (c *PickupOrderCommand) setSourceKind(sourceKind SourceKind) error {
	if sourceKind != SourceOrigin && sourceKind != SourceHandoff {
		return ErrSourceKindIsInvalid
	}

	c.sourceKind = sourceKind
	return nil
}
