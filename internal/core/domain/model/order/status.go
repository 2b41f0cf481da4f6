package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders always
// follow the correct delivery workflow.
//
// State transitions:
//
//	Pending ──> Reserved ──> InTransit ──┬──> Delivered
//	   │  ^         │                    └──> Failed
//	   │  └─────────┤ (detach on breakdown before pickup)
//	   └────────────┴──> Withdrawn
//
// Delivered, Failed and Withdrawn are terminal states.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a submitted order.
	// Orders in this status are waiting to be reserved by a drone.
	Pending

	// Reserved indicates a drone has claimed the order but has not yet
	// picked it up.
	Reserved

	// InTransit indicates the order has been picked up and is being delivered.
	InTransit

	// Delivered indicates the order reached its destination. Terminal state.
	Delivered

	// Failed indicates the delivery did not complete. Terminal state.
	Failed

	// Withdrawn indicates the owner cancelled the order before pickup.
	// Terminal state.
	Withdrawn
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Reserved:  "Reserved",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
		Withdrawn: "Withdrawn",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Reserved:  "Reserved",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
		Withdrawn: "Withdrawn",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range value are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed || s == Withdrawn
}

// ValidateCanHaveDrone validates the consistency between order status and
// drone assignment.
//
// Business rules:
//   - Pending and Withdrawn orders must not have a drone assigned
//   - Reserved and InTransit orders must have a drone assigned
//   - Delivered and Failed orders retain the last assigning drone as history
//
// Parameters:
//   - assigned: whether the order has a drone assigned
//
// Returns:
//   - error: validation error if status and drone assignment are inconsistent
func (s Status) ValidateCanHaveDrone(assigned bool) error {
	if assigned && (s == Pending || s == Withdrawn) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a drone", s.String()),
		)
	}

	if !assigned && (s == Reserved || s == InTransit) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no drone", s.String()),
		)
	}

	return nil
}

// Reserve transitions the status to Reserved.
//
// Valid transitions:
//   - Pending -> Reserved (a drone claims the order)
func (s Status) Reserve() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order", s.String(),
			fmt.Errorf("%s is not a valid status to reserve", s.String()),
		)
	}

	return Reserved, nil
}

// Pickup transitions the status to InTransit.
//
// Valid transitions:
//   - Reserved -> InTransit (the assigned drone collected the package)
func (s Status) Pickup() (Status, error) {
	if s != Reserved {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order", s.String(),
			fmt.Errorf("%s is not a valid status to pick up", s.String()),
		)
	}

	return InTransit, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - InTransit -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order", s.String(),
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}

	return Delivered, nil
}

// Fail transitions the status to Failed.
//
// Valid transitions:
//   - InTransit -> Failed
func (s Status) Fail() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order", s.String(),
			fmt.Errorf("%s is not a valid status to fail", s.String()),
		)
	}

	return Failed, nil
}

// Withdraw transitions the status to Withdrawn.
//
// Valid transitions:
//   - Pending -> Withdrawn
//   - Reserved -> Withdrawn (the assigned drone is released)
//
// Orders that are already in transit or in a terminal state cannot be withdrawn.
func (s Status) Withdraw() (Status, error) {
	if s != Pending && s != Reserved {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order", s.String(),
			fmt.Errorf("%s is not a valid status to withdraw", s.String()),
		)
	}

	return Withdrawn, nil
}

// Detach transitions the status back to Pending.
//
// Valid transitions:
//   - Reserved -> Pending (the assigned drone broke down before pickup)
//
// Detach returns the order to the pending pool so another drone can reserve it.
func (s Status) Detach() (Status, error) {
	if s != Reserved {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order", s.String(),
			fmt.Errorf("%s is not a valid status to detach", s.String()),
		)
	}

	return Pending, nil
}
