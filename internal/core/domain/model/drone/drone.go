package drone

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for drone operations.
var (
	// ErrExternalIdentityIsRequired is returned when attempting to create a drone
	// without the external identity it authenticates as.
	ErrExternalIdentityIsRequired = errs.NewValueIsRequiredError("externalIdentity")
	// ErrDroneIsNotConstructed is returned when using an improperly initialized Drone.
	ErrDroneIsNotConstructed = errors.New("Drone must be created via NewDrone constructor")
)

// Drone represents a delivery drone in the system.
// It is an aggregate root that manages drone identity, position, liveness and
// the order it currently holds.
//
// Key responsibilities:
//   - Mapping an authenticated external identity to a drone record
//   - Tracking position and last heartbeat as the drone moves
//   - Enforcing the claim/pickup/release workflow against its status
//   - Breakdown and repair handling
//
// Business rules:
//   - A drone holds an order exactly while it is Reserved or InTransit
//   - New drones start Idle at coordinates (0,0) with no order
//   - Location and heartbeat updates are unconditional regardless of status
type Drone struct {
	// id uniquely identifies the drone
	id kernel.UUID
	// externalIdentity is the authenticated identity the drone connects as
	externalIdentity string
	// status is the current operational state
	status Status
	// location is the last reported position
	location kernel.Location
	// currentOrderID is the held order (nil unless Reserved or InTransit)
	currentOrderID *kernel.UUID
	// lastHeartbeat is the time of the last liveness/location report
	lastHeartbeat time.Time
	// createdAt records first contact from the external identity
	createdAt time.Time
	// updatedAt tracks the last persisted mutation
	updatedAt time.Time
	// guard ensures the drone was properly constructed
	guard guard.ConstructorGuard
}

// NewDrone creates a new Drone for an external identity seen for the first
// time. The drone starts Idle at coordinates (0,0) with no order and a fresh
// heartbeat.
//
// Parameters:
//   - id: Unique identifier for the drone (must be a valid UUID)
//   - externalIdentity: The authenticated identity (must be non-empty)
//
// Returns:
//   - *Drone: A fully initialized drone ready to reserve jobs
//   - error: Validation error if any parameter is invalid
func NewDrone(id kernel.UUID, externalIdentity string) (*Drone, error) {
	origin, err := kernel.NewLocation(0, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d := &Drone{
		status:        Idle,
		lastHeartbeat: now,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err = errors.Join(
		d.setID(id),
		d.setExternalIdentity(externalIdentity),
		d.setLocation(origin),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDrone reconstructs a Drone aggregate from persistent storage.
// Unlike NewDrone, this constructor accepts the complete persisted state and
// verifies the status/order consistency invariant.
func RestoreDrone(
	id kernel.UUID,
	externalIdentity string,
	status Status,
	location kernel.Location,
	currentOrderID *kernel.UUID,
	lastHeartbeat time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Drone, error) {
	d := &Drone{
		lastHeartbeat: lastHeartbeat,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setExternalIdentity(externalIdentity),
		d.setStatus(status),
		d.setLocation(location),
		d.setCurrentOrder(currentOrderID),
	); err != nil {
		return nil, err
	}

	if err := d.status.ValidateCanHaveOrder(d.currentOrderID != nil); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks if the Drone was properly constructed via a factory method.
func (d *Drone) Validate() error {
	if d == nil {
		return ErrDroneIsNotConstructed
	}
	return d.guard.Validate(ErrDroneIsNotConstructed)
}

// IsEqual compares two drones by their unique identifiers.
func (d *Drone) IsEqual(other *Drone) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the drone's unique identifier.
func (d *Drone) ID() kernel.UUID {
	return d.id
}

// ExternalIdentity returns the authenticated identity the drone connects as.
func (d *Drone) ExternalIdentity() string {
	return d.externalIdentity
}

// Status returns the current operational state of the drone.
func (d *Drone) Status() Status {
	return d.status
}

// Location returns the drone's last reported position.
func (d *Drone) Location() kernel.Location {
	return d.location
}

// CurrentOrder returns the ID of the order the drone holds.
// Returns nil unless the drone is Reserved or InTransit.
func (d *Drone) CurrentOrder() *kernel.UUID {
	return d.currentOrderID
}

// LastHeartbeat returns the time of the last liveness/location report.
func (d *Drone) LastHeartbeat() time.Time {
	return d.lastHeartbeat
}

// CreatedAt returns when the drone record was created.
func (d *Drone) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the time of the last persisted mutation.
func (d *Drone) UpdatedAt() time.Time {
	return d.updatedAt
}

// IsStale reports whether the drone's heartbeat is older than the given
// threshold at the reference time.
func (d *Drone) IsStale(now time.Time, threshold time.Duration) bool {
	return now.Sub(d.lastHeartbeat) > threshold
}

// Reserve claims an order for the drone and moves it to Reserved.
//
// Business rules:
//   - The order ID must be valid
//   - The drone must be Idle
func (d *Drone) Reserve(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Reserve()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.currentOrderID = &orderID
	return nil
}

// StartTransit marks the drone as carrying its held order.
//
// Business rules:
//   - The drone must be Reserved and holding an order
func (d *Drone) StartTransit() error {
	newStatus, err := d.status.StartTransit()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// Release returns the drone to Idle and clears the held order.
// Called after a delivery outcome is recorded or the held order is withdrawn.
//
// Business rules:
//   - The drone must be Reserved or InTransit
func (d *Drone) Release() error {
	newStatus, err := d.status.Release()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.currentOrderID = nil
	return nil
}

// MarkBroken takes the drone out of service and clears the held order.
// Any recovery of the abandoned delivery is handled by the caller.
func (d *Drone) MarkBroken() error {
	newStatus, err := d.status.MarkBroken()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.currentOrderID = nil
	return nil
}

// MarkFixed returns a repaired drone to service.
//
// Business rules:
//   - The drone must be Broken
func (d *Drone) MarkFixed() error {
	newStatus, err := d.status.MarkFixed()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// MoveTo records a new position and refreshes the heartbeat.
// The update is unconditional: it applies in every status.
func (d *Drone) MoveTo(location kernel.Location, at time.Time) error {
	if err := d.setLocation(location); err != nil {
		return err
	}

	d.lastHeartbeat = at
	return nil
}

// setID validates and sets the drone's unique identifier.
func (d *Drone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setExternalIdentity validates and sets the authenticated identity.
func (d *Drone) setExternalIdentity(externalIdentity string) error {
	if externalIdentity == "" {
		return ErrExternalIdentityIsRequired
	}
	d.externalIdentity = externalIdentity
	return nil
}

// setStatus validates and sets the operational state. Restore path only.
func (d *Drone) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

// setLocation validates and sets the position.
func (d *Drone) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}

// setCurrentOrder validates and sets the held order. Restore path only.
func (d *Drone) setCurrentOrder(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.currentOrderID = orderID
	return nil
}
