package services

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// DefaultCruiseSpeedKmPerHour is the system-wide drone cruise speed used when
// no override is configured.
const DefaultCruiseSpeedKmPerHour = 50.0

// ETACalculator is a domain service that projects delivery arrival times from
// great-circle distance and a fixed cruise speed.
//
// The same formula is used for the initial estimate at pickup and for every
// refresh while the drone moves, so estimates stay comparable over the life
// of a delivery. Zero distance yields an arrival time equal to the reference
// time.
//
// Example usage:
//
//	calc, _ := services.NewETACalculator(services.DefaultCruiseSpeedKmPerHour)
//	eta, err := calc.EstimateArrival(time.Now(), droneLocation, order.Destination())
//	if err != nil {
//	    // Handle invalid locations
//	}
type ETACalculator struct {
	speedKmPerHour float64
}

// NewETACalculator creates an ETACalculator for the given cruise speed.
// Speed must be positive.
func NewETACalculator(speedKmPerHour float64) (ETACalculator, error) {
	if speedKmPerHour <= 0 {
		return ETACalculator{}, errs.NewValueIsInvalidError("speedKmPerHour")
	}

	return ETACalculator{speedKmPerHour: speedKmPerHour}, nil
}

// SpeedKmPerHour returns the configured cruise speed.
func (c ETACalculator) SpeedKmPerHour() float64 {
	return c.speedKmPerHour
}

// EstimateArrival projects the arrival time at the destination when departing
// from the given position at the reference time.
//
// Parameters:
//   - now: Reference time the projection starts from
//   - from: Current position (must be a valid location)
//   - to: Delivery destination (must be a valid location)
//
// Returns:
//   - time.Time: Projected arrival, now + distance/speed
//   - error: Validation error if either location is improperly constructed
func (c ETACalculator) EstimateArrival(now time.Time, from kernel.Location, to kernel.Location) (time.Time, error) {
	distanceKm, err := from.DistanceTo(to)
	if err != nil {
		return time.Time{}, err
	}

	travel := time.Duration(distanceKm / c.speedKmPerHour * float64(time.Hour))
	return now.Add(travel), nil
}
