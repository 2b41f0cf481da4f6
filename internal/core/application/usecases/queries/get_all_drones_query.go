package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetAllDronesQueryIsNotConstructed = errors.New(
	"GetAllDronesQuery must be created via NewGetAllDronesQuery constructor",
)

// GetAllDronesQuery lists every drone in the fleet. Administrative view.
type GetAllDronesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllDronesQuery creates a query listing all drones.
func NewGetAllDronesQuery() GetAllDronesQuery {
	return GetAllDronesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllDronesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDronesQueryIsNotConstructed)
}
