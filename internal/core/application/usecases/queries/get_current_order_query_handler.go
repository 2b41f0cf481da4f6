package queries

import (
	"context"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCurrentOrderQueryHandler retrieves a drone's active order by joining
// through the drone's current assignment.
type GetCurrentOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetCurrentOrderQueryHandler creates a handler for active-order lookups.
func NewGetCurrentOrderQueryHandler(db *gorm.DB) GetCurrentOrderQueryHandler {
	return GetCurrentOrderQueryHandler{db: db}
}

// Handle executes the lookup.
// Returns errs.ObjectNotFoundError when the drone is unknown or has no
// active order; callers surface the latter as "none".
func (h GetCurrentOrderQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentOrderQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var row orderRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT`+prefixedOrderColumns("o")+`
		FROM orders o
		JOIN drones d ON d.current_order_id = o.id
		WHERE d.external_identity = ?
	`, query.DroneIdentity()).Scan(&row)
	if result.Error != nil {
		return OrderResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.DroneIdentity())
	}

	return row.toResponse(), nil
}
