// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read directly from the database with raw SQL, bypassing the
// domain aggregates: responses are plain view structures, never entities.
package queries

import (
	"strings"
	"time"

	"dispatch/internal/core/domain/model/drone"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// CoordinatesResponse is a latitude/longitude pair in a query response.
type CoordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OrderResponse is the read model for a delivery order.
type OrderResponse struct {
	ID                    string               `json:"id"`
	Owner                 string               `json:"owner"`
	Status                string               `json:"status"`
	Origin                CoordinatesResponse  `json:"origin"`
	Destination           CoordinatesResponse  `json:"destination"`
	AssignedDroneID       *string              `json:"assignedDroneId,omitempty"`
	CurrentLocation       *CoordinatesResponse `json:"currentLocation,omitempty"`
	EstimatedDeliveryTime *time.Time           `json:"estimatedDeliveryTime,omitempty"`
	PickedUpAt            *time.Time           `json:"pickedUpAt,omitempty"`
	DeliveredAt           *time.Time           `json:"deliveredAt,omitempty"`
	CreatedAt             time.Time            `json:"createdAt"`
	UpdatedAt             time.Time            `json:"updatedAt"`
}

// DroneResponse is the read model for a drone.
type DroneResponse struct {
	ID               string              `json:"id"`
	ExternalIdentity string              `json:"externalIdentity"`
	Status           string              `json:"status"`
	Location         CoordinatesResponse `json:"location"`
	CurrentOrderID   *string             `json:"currentOrderId,omitempty"`
	LastHeartbeat    time.Time           `json:"lastHeartbeat"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// orderRow is the raw SQL scan target for order queries.
// Column names follow the orders table schema.
type orderRow struct {
	ID                    uuid.UUID
	Owner                 string
	Status                int
	OriginLatitude        float64
	OriginLongitude       float64
	DestinationLatitude   float64
	DestinationLongitude  float64
	AssignedDroneID       *uuid.UUID
	CurrentLatitude       *float64
	CurrentLongitude      *float64
	EstimatedDeliveryTime *time.Time
	PickedUpAt            *time.Time
	DeliveredAt           *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// orderColumns lists the selected columns for order queries, matching the
// orderRow scan target.
const orderColumns = `
	id,
	owner,
	status,
	origin_latitude,
	origin_longitude,
	destination_latitude,
	destination_longitude,
	assigned_drone_id,
	current_latitude,
	current_longitude,
	estimated_delivery_time,
	picked_up_at,
	delivered_at,
	created_at,
	updated_at`

// prefixedOrderColumns qualifies the order columns with a table alias for
// queries that join other tables.
func prefixedOrderColumns(alias string) string {
	return strings.ReplaceAll(orderColumns, "\n\t", "\n\t"+alias+".")
}

func (r orderRow) toResponse() OrderResponse {
	resp := OrderResponse{
		ID:     r.ID.String(),
		Owner:  r.Owner,
		Status: order.Status(r.Status).String(),
		Origin: CoordinatesResponse{
			Latitude:  r.OriginLatitude,
			Longitude: r.OriginLongitude,
		},
		Destination: CoordinatesResponse{
			Latitude:  r.DestinationLatitude,
			Longitude: r.DestinationLongitude,
		},
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		PickedUpAt:            r.PickedUpAt,
		DeliveredAt:           r.DeliveredAt,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}

	if r.AssignedDroneID != nil {
		id := r.AssignedDroneID.String()
		resp.AssignedDroneID = &id
	}

	if r.CurrentLatitude != nil && r.CurrentLongitude != nil {
		resp.CurrentLocation = &CoordinatesResponse{
			Latitude:  *r.CurrentLatitude,
			Longitude: *r.CurrentLongitude,
		}
	}

	return resp
}

// droneRow is the raw SQL scan target for drone queries.
type droneRow struct {
	ID                uuid.UUID
	ExternalIdentity  string
	Status            int
	LocationLatitude  float64
	LocationLongitude float64
	CurrentOrderID    *uuid.UUID
	LastHeartbeat     time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const droneColumns = `
	id,
	external_identity,
	status,
	location_latitude,
	location_longitude,
	current_order_id,
	last_heartbeat,
	created_at,
	updated_at`

func (r droneRow) toResponse() DroneResponse {
	resp := DroneResponse{
		ID:               r.ID.String(),
		ExternalIdentity: r.ExternalIdentity,
		Status:           drone.Status(r.Status).String(),
		Location: CoordinatesResponse{
			Latitude:  r.LocationLatitude,
			Longitude: r.LocationLongitude,
		},
		LastHeartbeat: r.LastHeartbeat,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}

	if r.CurrentOrderID != nil {
		id := r.CurrentOrderID.String()
		resp.CurrentOrderID = &id
	}

	return resp
}
