package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetCurrentOrderQueryIsNotConstructed = errors.New(
		"GetCurrentOrderQuery must be created via NewGetCurrentOrderQuery constructor",
	)
	ErrDroneIdentityIsRequired = errors.New("drone identity is required")
)

// GetCurrentOrderQuery retrieves the order a drone is currently working on,
// addressed by the identity the drone authenticates with.
type GetCurrentOrderQuery struct {
	droneIdentity string

	guard guard.ConstructorGuard
}

// NewGetCurrentOrderQuery creates a query for a drone's active order.
func NewGetCurrentOrderQuery(droneIdentity string) (GetCurrentOrderQuery, error) {
	if droneIdentity == "" {
		return GetCurrentOrderQuery{}, ErrDroneIdentityIsRequired
	}

	return GetCurrentOrderQuery{
		droneIdentity: droneIdentity,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCurrentOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentOrderQueryIsNotConstructed)
}

// DroneIdentity returns the external identity of the asking drone.
func (q GetCurrentOrderQuery) DroneIdentity() string {
	return q.droneIdentity
}
