package drone

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the operational state of a drone.
// It implements a state machine with defined transitions so drones always
// follow the correct dispatch workflow.
//
// State transitions:
//
//	Idle ──> Reserved ──> InTransit
//	 ^           │            │
//	 └───────────┴────────────┘ (release after outcome or withdrawal)
//
//	any ──> Broken ──> Idle (after repair)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Idle indicates the drone is available to reserve a job.
	Idle

	// Reserved indicates the drone has claimed an order but has not yet
	// picked it up.
	Reserved

	// InTransit indicates the drone is carrying an order to its destination.
	InTransit

	// Broken indicates the drone needs maintenance and cannot carry orders.
	Broken
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Idle:      "Idle",
		Reserved:  "Reserved",
		InTransit: "InTransit",
		Broken:    "Broken",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Idle:      "Idle",
		Reserved:  "Reserved",
		InTransit: "InTransit",
		Broken:    "Broken",
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

// ValidateCanHaveOrder validates the consistency between drone status and
// order assignment. A drone holds an order exactly while it is Reserved or
// InTransit.
//
// Parameters:
//   - assigned: whether the drone currently holds an order
//
// Returns:
//   - error: validation error if status and order assignment are inconsistent
func (s Status) ValidateCanHaveOrder(assigned bool) error {
	if assigned && s != Reserved && s != InTransit {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to hold an order", s.String()),
		)
	}

	if !assigned && (s == Reserved || s == InTransit) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to hold no order", s.String()),
		)
	}

	return nil
}

// Reserve transitions the status to Reserved.
//
// Valid transitions:
//   - Idle -> Reserved (the drone claims a pending order)
func (s Status) Reserve() (Status, error) {
	if s != Idle {
		return 0, errs.NewInvalidStateErrorWithCause(
			"drone", s.String(),
			fmt.Errorf("%s is not a valid status to reserve a job", s.String()),
		)
	}

	return Reserved, nil
}

// StartTransit transitions the status to InTransit.
//
// Valid transitions:
//   - Reserved -> InTransit (the drone picked up the package)
func (s Status) StartTransit() (Status, error) {
	if s != Reserved {
		return 0, errs.NewInvalidStateErrorWithCause(
			"drone", s.String(),
			fmt.Errorf("%s is not a valid status to start transit", s.String()),
		)
	}

	return InTransit, nil
}

// Release transitions the status back to Idle.
//
// Valid transitions:
//   - Reserved -> Idle (the held order was withdrawn)
//   - InTransit -> Idle (the delivery reached a terminal outcome)
func (s Status) Release() (Status, error) {
	if s != Reserved && s != InTransit {
		return 0, errs.NewInvalidStateErrorWithCause(
			"drone", s.String(),
			fmt.Errorf("%s is not a valid status to release", s.String()),
		)
	}

	return Idle, nil
}

// MarkBroken transitions the status to Broken. A drone can break down in any
// state; marking an already broken drone is a no-op transition.
func (s Status) MarkBroken() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	return Broken, nil
}

// MarkFixed transitions the status to Idle.
//
// Valid transitions:
//   - Broken -> Idle (maintenance completed)
func (s Status) MarkFixed() (Status, error) {
	if s != Broken {
		return 0, errs.NewInvalidStateErrorWithCause(
			"drone", s.String(),
			fmt.Errorf("%s is not a valid status to mark fixed", s.String()),
		)
	}

	return Idle, nil
}
