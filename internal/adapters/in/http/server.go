// Package http exposes the dispatch operations over REST. Handlers stay
// thin: they translate requests into commands and queries, hand them to the
// application layer, and map the typed errors back onto HTTP statuses.
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Commands bundles the write-side handlers the server dispatches to.
type Commands struct {
	SubmitOrder         commands.SubmitOrderCommandHandler
	WithdrawOrder       commands.WithdrawOrderCommandHandler
	EditOrderLocations  commands.EditOrderLocationsCommandHandler
	ReserveJob          commands.ReserveJobCommandHandler
	PickupOrder         commands.PickupOrderCommandHandler
	MarkOutcome         commands.MarkOutcomeCommandHandler
	UpdateDroneLocation commands.UpdateDroneLocationCommandHandler
	MarkDroneBroken     commands.MarkDroneBrokenCommandHandler
	MarkDroneFixed      commands.MarkDroneFixedCommandHandler
}

// Queries bundles the read-side handlers the server dispatches to.
type Queries struct {
	GetOrder         queries.GetOrderQueryHandler
	GetOrdersByOwner queries.GetOrdersByOwnerQueryHandler
	GetPendingOrders queries.GetPendingOrdersQueryHandler
	GetCurrentOrder  queries.GetCurrentOrderQueryHandler
	GetAllOrders     queries.GetAllOrdersQueryHandler
	GetAllDrones     queries.GetAllDronesQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	commands Commands
	queries  Queries
}

// NewServer creates the HTTP server over the given use case handlers.
func NewServer(commandHandlers Commands, queryHandlers Queries) *Server {
	return &Server{
		commands: commandHandlers,
		queries:  queryHandlers,
	}
}

// RegisterRoutes mounts all routes under /api/v1 with bearer authentication
// and per-group role guards.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	api := e.Group("/api/v1", AuthMiddleware(jwtSecret))

	orders := api.Group("/orders")
	orders.POST("", s.SubmitOrder, RequireRole(RoleEndUser))
	orders.GET("", s.GetMyOrders, RequireRole(RoleEndUser))
	orders.GET("/:orderID", s.GetOrder, RequireRole(RoleEndUser, RoleAdmin))
	orders.DELETE("/:orderID", s.WithdrawOrder, RequireRole(RoleEndUser))
	orders.PATCH("/:orderID/locations", s.EditOrderLocations, RequireRole(RoleAdmin))

	jobs := api.Group("/jobs", RequireRole(RoleDrone))
	jobs.GET("/pending", s.GetPendingJobs)
	jobs.GET("/current", s.GetCurrentOrder)
	jobs.POST("/reserve", s.ReserveJob)
	jobs.POST("/pickup", s.PickupOrder)
	jobs.POST("/outcome", s.MarkOutcome)

	self := api.Group("/drone", RequireRole(RoleDrone))
	self.PUT("/location", s.UpdateLocation)
	self.POST("/broken", s.MarkBroken)

	admin := api.Group("/admin", RequireRole(RoleAdmin))
	admin.GET("/orders", s.GetAllOrders)
	admin.GET("/drones", s.GetAllDrones)
	admin.POST("/drones/:droneID/broken", s.MarkBrokenByID)
	admin.POST("/drones/:droneID/fixed", s.MarkFixed)
}

type coordinatesRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type submitOrderRequest struct {
	Origin      coordinatesRequest `json:"origin"`
	Destination coordinatesRequest `json:"destination"`
}

type submitOrderResponse struct {
	ID string `json:"id"`
}

type editLocationsRequest struct {
	Origin      *coordinatesRequest `json:"origin"`
	Destination *coordinatesRequest `json:"destination"`
}

type pickupRequest struct {
	Source string `json:"source"`
}

type outcomeRequest struct {
	Outcome string `json:"outcome"`
}

// SubmitOrder handles POST /api/v1/orders - places a new delivery order for
// the authenticated owner.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	var request submitOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, err)
	}

	origin, err := kernel.NewLocation(request.Origin.Latitude, request.Origin.Longitude)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	destination, err := kernel.NewLocation(request.Destination.Latitude, request.Destination.Longitude)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewSubmitOrderCommand(orderID, principal.Name, origin, destination)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := s.commands.SubmitOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, submitOrderResponse{ID: orderID.String()})
}

// GetMyOrders handles GET /api/v1/orders - lists the authenticated owner's orders.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	query, err := queries.NewGetOrdersByOwnerQuery(principal.Name)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	orders, err := s.queries.GetOrdersByOwner.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:orderID - retrieves one order.
// End users only see their own orders; administrators see any.
func (s *Server) GetOrder(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	var query queries.GetOrderQuery
	if principal.Role == RoleAdmin {
		query, err = queries.NewGetOrderAdminQuery(orderID)
	} else {
		query, err = queries.NewGetOrderQuery(orderID, principal.Name)
	}
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	response, err := s.queries.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// WithdrawOrder handles DELETE /api/v1/orders/:orderID - withdraws the
// authenticated owner's order and releases any assigned drone.
func (s *Server) WithdrawOrder(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewWithdrawOrderCommand(orderID, principal.Name)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := s.commands.WithdrawOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EditOrderLocations handles PATCH /api/v1/orders/:orderID/locations -
// changes a pending order's origin and/or destination.
func (s *Server) EditOrderLocations(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	var request editLocationsRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, err)
	}

	var origin, destination *kernel.Location

	if request.Origin != nil {
		location, locErr := kernel.NewLocation(request.Origin.Latitude, request.Origin.Longitude)
		if locErr != nil {
			return writeBadRequest(ctx, locErr)
		}
		origin = &location
	}

	if request.Destination != nil {
		location, locErr := kernel.NewLocation(request.Destination.Latitude, request.Destination.Longitude)
		if locErr != nil {
			return writeBadRequest(ctx, locErr)
		}
		destination = &location
	}

	cmd, err := commands.NewEditOrderLocationsCommand(orderID, origin, destination)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := s.commands.EditOrderLocations.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPendingJobs handles GET /api/v1/jobs/pending - lists the dispatch queue
// in the order jobs would be handed out.
func (s *Server) GetPendingJobs(ctx echo.Context) error {
	orders, err := s.queries.GetPendingOrders.Handle(
		ctx.Request().Context(),
		queries.NewGetPendingOrdersQuery(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetCurrentOrder handles GET /api/v1/jobs/current - returns the order the
// authenticated drone is working on, or 404 when it has none.
func (s *Server) GetCurrentOrder(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	query, err := queries.NewGetCurrentOrderQuery(principal.Name)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	response, err := s.queries.GetCurrentOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReserveJob handles POST /api/v1/jobs/reserve - claims the oldest pending
// order for the authenticated drone.
func (s *Server) ReserveJob(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	cmd, err := commands.NewReserveJobCommand(principal.Name)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	reserved, err := s.commands.ReserveJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(reserved))
}

// PickupOrder handles POST /api/v1/jobs/pickup - reports that the drone has
// collected the package, at the origin or at a handoff point.
func (s *Server) PickupOrder(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	var request pickupRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewPickupOrderCommand(principal.Name, commands.SourceKind(request.Source))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	picked, err := s.commands.PickupOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(picked))
}

// MarkOutcome handles POST /api/v1/jobs/outcome - records the delivery result
// for the drone's in-transit order.
func (s *Server) MarkOutcome(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	var request outcomeRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewMarkOutcomeCommand(principal.Name, commands.Outcome(request.Outcome))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	marked, err := s.commands.MarkOutcome.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(marked))
}

// UpdateLocation handles PUT /api/v1/drone/location - records a drone
// position report and refreshes the in-transit ETA.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	var request coordinatesRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, err)
	}

	location, err := kernel.NewLocation(request.Latitude, request.Longitude)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewUpdateDroneLocationCommand(principal.Name, location)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	updated, err := s.commands.UpdateDroneLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, droneToResponse(updated))
}

type markBrokenResponse struct {
	Drone        queries.DroneResponse  `json:"drone"`
	HandoffOrder *queries.OrderResponse `json:"handoffOrder,omitempty"`
}

// MarkBroken handles POST /api/v1/drone/broken - the authenticated drone
// reports itself unusable. If it was mid-delivery a handoff order is spawned.
func (s *Server) MarkBroken(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	cmd, err := commands.NewMarkDroneBrokenCommand(principal.Name)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	return s.handleMarkBroken(ctx, cmd)
}

// MarkBrokenByID handles POST /api/v1/admin/drones/:droneID/broken - an
// administrator grounds a drone by its identifier.
func (s *Server) MarkBrokenByID(ctx echo.Context) error {
	droneID, err := kernel.UUIDFromString(ctx.Param("droneID"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewMarkDroneBrokenByIDCommand(droneID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	return s.handleMarkBroken(ctx, cmd)
}

func (s *Server) handleMarkBroken(ctx echo.Context, cmd commands.MarkDroneBrokenCommand) error {
	broken, handoff, err := s.commands.MarkDroneBroken.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := markBrokenResponse{Drone: droneToResponse(broken)}
	if handoff != nil {
		handoffView := orderToResponse(handoff)
		response.HandoffOrder = &handoffView
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkFixed handles POST /api/v1/admin/drones/:droneID/fixed - returns a
// repaired drone to the idle pool.
func (s *Server) MarkFixed(ctx echo.Context) error {
	droneID, err := kernel.UUIDFromString(ctx.Param("droneID"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewMarkDroneFixedCommand(droneID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	fixed, err := s.commands.MarkDroneFixed.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, droneToResponse(fixed))
}

// GetAllOrders handles GET /api/v1/admin/orders - lists every order.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	orders, err := s.queries.GetAllOrders.Handle(
		ctx.Request().Context(),
		queries.NewGetAllOrdersQuery(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetAllDrones handles GET /api/v1/admin/drones - lists the whole fleet.
func (s *Server) GetAllDrones(ctx echo.Context) error {
	drones, err := s.queries.GetAllDrones.Handle(
		ctx.Request().Context(),
		queries.NewGetAllDronesQuery(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, drones)
}
