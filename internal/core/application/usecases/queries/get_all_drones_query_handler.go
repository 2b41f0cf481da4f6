package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllDronesQueryHandler lists the whole fleet with the latest known
// position and heartbeat of every drone.
type GetAllDronesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllDronesQueryHandler creates a handler for the fleet listing.
func NewGetAllDronesQueryHandler(db *gorm.DB) GetAllDronesQueryHandler {
	return GetAllDronesQueryHandler{db: db}
}

// Handle executes the listing.
func (h GetAllDronesQueryHandler) Handle(
	ctx context.Context,
	query GetAllDronesQuery,
) ([]DroneResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []droneRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT` + droneColumns + `
		FROM drones
		ORDER BY external_identity
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	drones := make([]DroneResponse, 0, len(rows))
	for _, row := range rows {
		drones = append(drones, row.toResponse())
	}

	return drones, nil
}
