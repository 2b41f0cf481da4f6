package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOrdersByOwnerQueryIsNotConstructed = errors.New(
		"GetOrdersByOwnerQuery must be created via NewGetOrdersByOwnerQuery constructor",
	)
	ErrOwnerIsRequired = errors.New("owner is required")
)

// GetOrdersByOwnerQuery lists every order placed by one identity,
// newest first.
type GetOrdersByOwnerQuery struct {
	owner string

	guard guard.ConstructorGuard
}

// NewGetOrdersByOwnerQuery creates a query listing one identity's orders.
func NewGetOrdersByOwnerQuery(owner string) (GetOrdersByOwnerQuery, error) {
	if owner == "" {
		return GetOrdersByOwnerQuery{}, ErrOwnerIsRequired
	}

	return GetOrdersByOwnerQuery{
		owner: owner,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByOwnerQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByOwnerQueryIsNotConstructed)
}

// Owner returns the identity whose orders are listed.
func (q GetOrdersByOwnerQuery) Owner() string {
	return q.owner
}
