package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is Earth's mean radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created via the NewLocation constructor to ensure coordinates are in range.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location represents a geographic point with validated coordinates.
// Location is an immutable value object: latitude is always within [-90, 90]
// and longitude within [-180, 180] degrees. The zero value of Location is
// invalid and fails validation - use NewLocation to create instances.
//
// Example:
//
//	loc, err := kernel.NewLocation(40.7128, -74.0060)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a new Location with the specified coordinates.
// Latitude must be within [LatitudeMin..LatitudeMax] and longitude within
// [LongitudeMin..LongitudeMax]. Returns an error if either coordinate is
// outside its valid bounds or is not a finite number.
//
// Parameters:
//   - latitude: Degrees north of the equator (negative for south)
//   - longitude: Degrees east of the prime meridian (negative for west)
//
// Returns:
//   - Location: A valid location instance
//   - error: Validation error if a coordinate is out of bounds
func NewLocation(latitude float64, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed via NewLocation.
// The zero value of Location is invalid and will fail this validation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in degrees.
// The value is guaranteed to be within [LatitudeMin..LatitudeMax] for
// properly constructed Location instances.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
// The value is guaranteed to be within [LongitudeMin..LongitudeMax] for
// properly constructed Location instances.
func (l Location) Longitude() float64 {
	return l.longitude
}

// String returns a human-readable representation in the form
// "Location(latitude,longitude)". Implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares two locations for equality.
// Two locations are equal if they have the same latitude and longitude.
// Both locations must be properly constructed for the comparison to succeed.
//
// Returns:
//   - bool: true if locations are equal, false otherwise
//   - error: Validation error if either location is improperly constructed
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// DistanceTo calculates the great-circle distance to another location in
// kilometers using the haversine formula. The distance between a location
// and itself is zero. Both locations must be properly constructed.
//
// Parameters:
//   - other: The Location to calculate distance to
//
// Returns:
//   - float64: Distance in kilometers
//   - error: Validation error if either location is improperly constructed
//
// Example:
//
//	nyc, _ := kernel.NewLocation(40.7128, -74.0060)
//	la, _ := kernel.NewLocation(34.0522, -118.2437)
//	km, _ := nyc.DistanceTo(la) // ~3936 km
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	const degToRad = math.Pi / 180

	dLat := (other.latitude - l.latitude) * degToRad
	dLng := (other.longitude - l.longitude) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(l.latitude*degToRad)*math.Cos(other.latitude*degToRad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// setLatitude sets the latitude with range validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, so the private setters can self-encapsulate validation
// during object construction.
func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	l.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, so the private setters can self-encapsulate validation
// during object construction.
func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	l.longitude = longitude
	return nil
}
