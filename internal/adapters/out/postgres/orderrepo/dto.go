// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status, owner and drone assignment.
type OrderDTO struct {
	ID                    uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Owner                 string      `gorm:"index"`
	Origin                LocationDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination           LocationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Status                int         `gorm:"index"`
	AssignedDroneID       *uuid.UUID  `gorm:"type:uuid;index"`
	CurrentLatitude       *float64
	CurrentLongitude      *float64
	EstimatedDeliveryTime *time.Time
	PickedUpAt            *time.Time
	DeliveredAt           *time.Time
	CreatedAt             time.Time `gorm:"index"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents embedded geographic coordinates.
type LocationDTO struct {
	Latitude  float64
	Longitude float64
}

// fromDomain converts an order domain aggregate to its database representation.
// The creation timestamp comes from the aggregate so FIFO selection stays
// deterministic; the update timestamp is owned by the store.
func fromDomain(aggregate *order.Order) OrderDTO {
	var assignedDroneID *uuid.UUID
	if id := aggregate.AssignedDrone(); id != nil {
		raw := id.Bytes()
		assignedDroneID = &raw
	}

	var currentLatitude, currentLongitude *float64
	if loc := aggregate.CurrentLocation(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		currentLatitude, currentLongitude = &lat, &lng
	}

	return OrderDTO{
		ID:    aggregate.ID().Bytes(),
		Owner: aggregate.Owner(),
		Origin: LocationDTO{
			Latitude:  aggregate.Origin().Latitude(),
			Longitude: aggregate.Origin().Longitude(),
		},
		Destination: LocationDTO{
			Latitude:  aggregate.Destination().Latitude(),
			Longitude: aggregate.Destination().Longitude(),
		},
		Status:                int(aggregate.Status()),
		AssignedDroneID:       assignedDroneID,
		CurrentLatitude:       currentLatitude,
		CurrentLongitude:      currentLongitude,
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		PickedUpAt:            aggregate.PickedUpAt(),
		DeliveredAt:           aggregate.DeliveredAt(),
		CreatedAt:             aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate via RestoreOrder, which re-checks the
// status/assignment consistency invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var assignedDroneID *kernel.UUID
	if dto.AssignedDroneID != nil {
		droneID, droneErr := kernel.UUIDFromBytes((*dto.AssignedDroneID)[:])
		if droneErr != nil {
			return nil, droneErr
		}

		assignedDroneID = &droneID
	}

	origin, err := kernel.NewLocation(dto.Origin.Latitude, dto.Origin.Longitude)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewLocation(dto.Destination.Latitude, dto.Destination.Longitude)
	if err != nil {
		return nil, err
	}

	var currentLocation *kernel.Location
	if dto.CurrentLatitude != nil && dto.CurrentLongitude != nil {
		loc, locErr := kernel.NewLocation(*dto.CurrentLatitude, *dto.CurrentLongitude)
		if locErr != nil {
			return nil, locErr
		}

		currentLocation = &loc
	}

	return order.RestoreOrder(
		id,
		dto.Owner,
		origin,
		destination,
		order.Status(dto.Status),
		assignedDroneID,
		currentLocation,
		dto.EstimatedDeliveryTime,
		dto.PickedUpAt,
		dto.DeliveredAt,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
