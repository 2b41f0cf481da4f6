package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/drone"
	"dispatch/internal/core/domain/model/kernel"
)

// DroneRepository defines the persistence contract for drone aggregates.
type DroneRepository interface {
	// Add persists a new drone aggregate to storage.
	// The drone must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *drone.Drone) error

	// Update persists changes to an existing drone aggregate.
	// The drone must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *drone.Drone) error

	// UpdateIfStatus persists changes to an existing drone aggregate only if
	// its stored status still equals expected. Returns
	// errs.ConcurrencyConflictError when the guard does not match.
	UpdateIfStatus(ctx context.Context, aggregate *drone.Drone, expected drone.Status) error

	// Get retrieves a drone aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*drone.Drone, error)

	// GetByExternalIdentity retrieves a drone by the identity it authenticates
	// with. Returns errs.ObjectNotFoundError when no drone with that identity
	// has been registered yet.
	GetByExternalIdentity(ctx context.Context, externalIdentity string) (*drone.Drone, error)

	// GetAll retrieves every registered drone.
	GetAll(ctx context.Context) ([]*drone.Drone, error)

	// GetStale retrieves drones whose last heartbeat is older than the cutoff
	// and which are not already Broken.
	GetStale(ctx context.Context, cutoff time.Time) ([]*drone.Drone, error)
}
