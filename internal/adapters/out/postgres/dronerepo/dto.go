// Package dronerepo provides data transfer objects and mapping functions for drone persistence.
package dronerepo

import (
	"time"

	"dispatch/internal/core/domain/model/drone"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DroneDTO represents the database structure for persisting drone aggregates.
// The external identity carries a unique index because drones are resolved by
// the identity they authenticate with, and the heartbeat column is indexed
// for the staleness sweep.
type DroneDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ExternalIdentity string      `gorm:"uniqueIndex"`
	Status           int         `gorm:"index"`
	Location         LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	CurrentOrderID   *uuid.UUID  `gorm:"type:uuid;index"`
	LastHeartbeat    time.Time   `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for drone entities.
func (DroneDTO) TableName() string {
	return "drones"
}

// LocationDTO represents embedded geographic coordinates.
type LocationDTO struct {
	Latitude  float64
	Longitude float64
}

// fromDomain converts a drone domain aggregate to its database representation.
func fromDomain(aggregate *drone.Drone) DroneDTO {
	var currentOrderID *uuid.UUID
	if id := aggregate.CurrentOrder(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	return DroneDTO{
		ID:               aggregate.ID().Bytes(),
		ExternalIdentity: aggregate.ExternalIdentity(),
		Status:           int(aggregate.Status()),
		Location: LocationDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		CurrentOrderID: currentOrderID,
		LastHeartbeat:  aggregate.LastHeartbeat(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a drone domain aggregate.
// Reconstructs the complete aggregate via RestoreDrone, which re-checks the
// status/assignment consistency invariant.
func toDomain(dto DroneDTO) (*drone.Drone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}

		currentOrderID = &orderID
	}

	location, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return drone.RestoreDrone(
		id,
		dto.ExternalIdentity,
		drone.Status(dto.Status),
		location,
		currentOrderID,
		dto.LastHeartbeat,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
