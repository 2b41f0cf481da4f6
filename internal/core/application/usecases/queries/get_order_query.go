package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via a NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order's details. End users see only their own
// orders; administrators omit the ownership check.
type GetOrderQuery struct {
	orderID kernel.UUID
	owner   string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates an owner-scoped order lookup. The query fails with
// a forbidden error when the order belongs to someone else.
func NewGetOrderQuery(orderID kernel.UUID, owner string) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	if owner == "" {
		return GetOrderQuery{}, errors.New("owner is required")
	}

	return GetOrderQuery{
		orderID: orderID,
		owner:   owner,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewGetOrderAdminQuery creates an unscoped order lookup for administrators.
func NewGetOrderAdminQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Owner returns the identity the lookup is scoped to, or "" for admin lookups.
func (q GetOrderQuery) Owner() string {
	return q.owner
}
