package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder, NewHandoffOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOwnerIsRequired is returned when attempting to create an order without an owner identity.
	ErrOwnerIsRequired = errs.NewValueIsRequiredError("owner")
)

// Order represents a delivery order in the system. It is the aggregate root that
// manages the order lifecycle from submission through reservation, transit and a
// terminal outcome.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, owner identity, origin and destination
//   - A drone is assigned iff the order is Reserved or InTransit; Delivered and
//     Failed orders retain the last assigning drone's id as history
//   - Current location and estimated delivery time stay unset until pickup
//   - Status transitions follow the state machine defined on Status
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated transition methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// owner is the identity of the end user that submitted the order
	owner string

	// origin is the pickup point; for handoff orders, the abandonment point
	origin kernel.Location

	// destination is the delivery target
	destination kernel.Location

	// status represents the current state in the order lifecycle
	status Status

	// assignedDroneID is the claiming drone's ID (nil until reserved)
	assignedDroneID *kernel.UUID

	// currentLocation is the package position while in transit (nil before pickup)
	currentLocation *kernel.Location

	// estimatedDeliveryTime is the projected arrival time (nil before pickup)
	estimatedDeliveryTime *time.Time

	// pickedUpAt records when the package was collected
	pickedUpAt *time.Time

	// deliveredAt records when the package reached its destination
	deliveredAt *time.Time

	// createdAt orders the pending pool for FIFO matching
	createdAt time.Time

	// updatedAt tracks the last persisted mutation
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status.
// This is the entry point for orders submitted by end users.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - owner: Identity of the submitting end user (must be non-empty)
//   - origin: Pickup location with validated coordinates
//   - destination: Delivery location with validated coordinates
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// The created order has no assigned drone and no transit data; its creation
// time is recorded for FIFO matching.
func NewOrder(id kernel.UUID, owner string, origin kernel.Location, destination kernel.Location) (*Order, error) {
	now := time.Now().UTC()

	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(owner),
		o.setOrigin(origin),
		o.setDestination(destination),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// NewHandoffOrder creates a Pending replacement order for a delivery abandoned
// by a broken drone. The handoff order copies the failed delivery's owner and
// destination, takes the abandonment point as its origin, and re-enters the
// pending pool with all transit data reset.
//
// Parameters:
//   - id: Unique identifier for the handoff order
//   - abandoned: The in-transit order being abandoned (must be InTransit)
//   - pickupLocation: The broken drone's last known position
//
// Returns:
//   - *Order: The handoff order, ready to be reserved by another drone
//   - error: Validation error, or InvalidState if the abandoned order is not in transit
func NewHandoffOrder(id kernel.UUID, abandoned *Order, pickupLocation kernel.Location) (*Order, error) {
	if err := abandoned.Validate(); err != nil {
		return nil, err
	}

	if abandoned.status != InTransit {
		return nil, errs.NewInvalidStateError("order", abandoned.status.String())
	}

	return NewOrder(id, abandoned.owner, pickupLocation, abandoned.destination)
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, this constructor accepts the complete persisted state,
// including status, drone assignment, transit data and timestamps, and
// verifies the status/assignment consistency invariant.
func RestoreOrder(
	id kernel.UUID,
	owner string,
	origin kernel.Location,
	destination kernel.Location,
	status Status,
	assignedDroneID *kernel.UUID,
	currentLocation *kernel.Location,
	estimatedDeliveryTime *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:             createdAt,
		updatedAt:             updatedAt,
		estimatedDeliveryTime: estimatedDeliveryTime,
		pickedUpAt:            pickedUpAt,
		deliveredAt:           deliveredAt,
		isConstructed:         true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(owner),
		o.setOrigin(origin),
		o.setDestination(destination),
		o.setStatus(status),
		o.setAssignedDrone(assignedDroneID),
		o.setCurrentLocation(currentLocation),
	); err != nil {
		return nil, err
	}

	if err := o.status.ValidateCanHaveDrone(o.assignedDroneID != nil); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Owner returns the identity of the end user that submitted the order.
func (o *Order) Owner() string {
	return o.owner
}

// Origin returns the pickup location.
func (o *Order) Origin() kernel.Location {
	return o.origin
}

// Destination returns the delivery location.
func (o *Order) Destination() kernel.Location {
	return o.destination
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// AssignedDrone returns the claiming drone's ID.
// Returns nil if no drone has reserved the order.
func (o *Order) AssignedDrone() *kernel.UUID {
	return o.assignedDroneID
}

// CurrentLocation returns the package position while in transit.
// Returns nil before pickup.
func (o *Order) CurrentLocation() *kernel.Location {
	return o.currentLocation
}

// EstimatedDeliveryTime returns the projected arrival time.
// Returns nil before pickup.
func (o *Order) EstimatedDeliveryTime() *time.Time {
	return o.estimatedDeliveryTime
}

// PickedUpAt returns when the package was collected, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns when the package was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CreatedAt returns the order's submission time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last persisted mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOwnedBy reports whether the given identity submitted the order.
func (o *Order) IsOwnedBy(owner string) bool {
	return o.owner == owner
}

// Reserve assigns the order to a drone and moves it to Reserved.
//
// Business rules:
//   - The drone ID must be valid
//   - The order must be Pending
func (o *Order) Reserve(droneID kernel.UUID) error {
	if err := droneID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Reserve()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignedDroneID = &droneID
	return nil
}

// Pickup marks the order as collected and moves it to InTransit.
// Records the pickup time, the package's starting position (the drone's
// current location) and the initial delivery estimate.
//
// Business rules:
//   - The order must be Reserved
func (o *Order) Pickup(at time.Time, from kernel.Location, eta time.Time) error {
	if err := from.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Pickup()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.pickedUpAt = &at
	o.currentLocation = &from
	o.estimatedDeliveryTime = &eta
	return nil
}

// UpdateTransit refreshes the package position and delivery estimate while
// the order is in transit. Called whenever the carrying drone reports a new
// location.
//
// Business rules:
//   - The order must be InTransit
func (o *Order) UpdateTransit(at kernel.Location, eta time.Time) error {
	if err := at.Validate(); err != nil {
		return err
	}

	if o.status != InTransit {
		return errs.NewInvalidStateError("order", o.status.String())
	}

	o.currentLocation = &at
	o.estimatedDeliveryTime = &eta
	return nil
}

// MarkDelivered completes the delivery. The package position becomes the
// destination and the delivery time is recorded. The assigned drone is kept
// as history.
//
// Business rules:
//   - The order must be InTransit
func (o *Order) MarkDelivered(at time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &at
	o.currentLocation = &o.destination
	return nil
}

// MarkFailed records a failed delivery at the given position (the carrying
// drone's last location). The assigned drone is kept as history.
//
// Business rules:
//   - The order must be InTransit
func (o *Order) MarkFailed(at kernel.Location) error {
	if err := at.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.currentLocation = &at
	return nil
}

// Withdraw cancels the order on behalf of its owner and clears any drone
// assignment. The released drone must be transitioned separately.
//
// Business rules:
//   - The order must be Pending or Reserved
func (o *Order) Withdraw() error {
	newStatus, err := o.status.Withdraw()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignedDroneID = nil
	return nil
}

// Detach returns a Reserved order to the pending pool, clearing the drone
// assignment. Used when the assigned drone breaks down before pickup.
//
// Business rules:
//   - The order must be Reserved
func (o *Order) Detach() error {
	newStatus, err := o.status.Detach()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignedDroneID = nil
	return nil
}

// EditLocations replaces the order's origin and/or destination.
// A nil parameter leaves the corresponding location unchanged.
//
// Business rules:
//   - The order must be Pending
func (o *Order) EditLocations(origin *kernel.Location, destination *kernel.Location) error {
	if o.status != Pending {
		return errs.NewInvalidStateError("order", o.status.String())
	}

	if origin != nil {
		if err := o.setOrigin(*origin); err != nil {
			return err
		}
	}

	if destination != nil {
		if err := o.setDestination(*destination); err != nil {
			return err
		}
	}

	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOwner validates and sets the submitting identity.
func (o *Order) setOwner(owner string) error {
	if owner == "" {
		return ErrOwnerIsRequired
	}
	o.owner = owner
	return nil
}

// setOrigin validates and sets the pickup location.
func (o *Order) setOrigin(origin kernel.Location) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	o.origin = origin
	return nil
}

// setDestination validates and sets the delivery location.
func (o *Order) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

// setStatus validates and sets the lifecycle status. Restore path only.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setAssignedDrone validates and sets the drone assignment. Restore path only.
func (o *Order) setAssignedDrone(droneID *kernel.UUID) error {
	if droneID == nil {
		return nil
	}
	if err := droneID.Validate(); err != nil {
		return err
	}
	o.assignedDroneID = droneID
	return nil
}

// setCurrentLocation validates and sets the transit position. Restore path only.
func (o *Order) setCurrentLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	o.currentLocation = location
	return nil
}
