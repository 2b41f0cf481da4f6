// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateIfStatus persists changes to an existing order aggregate only if
	// its stored status still equals expected. Used as an optimistic guard for
	// concurrent reservation: if another transaction already moved the order
	// out of the expected status, no row is touched and
	// errs.ConcurrencyConflictError is returned.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstPending retrieves the oldest order in Pending status.
	// Ordering is by creation time ascending with the identifier as a
	// deterministic tie-break. Used by the reservation workflow.
	GetFirstPending(ctx context.Context) (*order.Order, error)

	// GetAllPending retrieves all orders in Pending status, oldest first.
	GetAllPending(ctx context.Context) ([]*order.Order, error)
}
