package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/drone"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned on every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps a use case error onto an HTTP status and writes the
// error body.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, commands.ErrNoPendingOrders):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConcurrencyConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: err.Error()})
}

// writeBadRequest reports a malformed or invalid request body.
func writeBadRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// orderToResponse converts an order aggregate returned by a command into the
// same view shape the queries produce.
func orderToResponse(aggregate *order.Order) queries.OrderResponse {
	response := queries.OrderResponse{
		ID:     aggregate.ID().String(),
		Owner:  aggregate.Owner(),
		Status: aggregate.Status().String(),
		Origin: queries.CoordinatesResponse{
			Latitude:  aggregate.Origin().Latitude(),
			Longitude: aggregate.Origin().Longitude(),
		},
		Destination: queries.CoordinatesResponse{
			Latitude:  aggregate.Destination().Latitude(),
			Longitude: aggregate.Destination().Longitude(),
		},
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		PickedUpAt:            aggregate.PickedUpAt(),
		DeliveredAt:           aggregate.DeliveredAt(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
	}

	if droneID := aggregate.AssignedDrone(); droneID != nil {
		id := droneID.String()
		response.AssignedDroneID = &id
	}

	if location := aggregate.CurrentLocation(); location != nil {
		response.CurrentLocation = &queries.CoordinatesResponse{
			Latitude:  location.Latitude(),
			Longitude: location.Longitude(),
		}
	}

	return response
}

// droneToResponse converts a drone aggregate returned by a command into the
// same view shape the queries produce.
func droneToResponse(aggregate *drone.Drone) queries.DroneResponse {
	response := queries.DroneResponse{
		ID:               aggregate.ID().String(),
		ExternalIdentity: aggregate.ExternalIdentity(),
		Status:           aggregate.Status().String(),
		Location: queries.CoordinatesResponse{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		LastHeartbeat: aggregate.LastHeartbeat(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}

	if orderID := aggregate.CurrentOrder(); orderID != nil {
		id := orderID.String()
		response.CurrentOrderID = &id
	}

	return response
}
