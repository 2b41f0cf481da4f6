package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/drone"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// resolveDrone looks up a drone by the identity it authenticates with,
// registering a fresh Idle drone on first contact. Every drone-facing handler
// goes through this so an unknown identity is never an error.
//
// Two first-contact requests can race past the lookup; the loser's Add hits
// the unique identity index and surfaces as errs.ErrConcurrencyConflict. The
// registration cannot be re-read inside the same transaction once the insert
// has failed, so callers retry with a fresh one (the reservation handler does
// this itself) and the lookup then finds the row.
func resolveDrone(
	ctx context.Context,
	droneRepo ports.DroneRepository,
	externalIdentity string,
) (*drone.Drone, error) {
	found, err := droneRepo.GetByExternalIdentity(ctx, externalIdentity)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	created, err := drone.NewDrone(kernel.NewUUID(), externalIdentity)
	if err != nil {
		return nil, err
	}

	if err = droneRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	return created, nil
}
