package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewETACalculator(t *testing.T) {
	t.Run("accepts_positive_speed", func(t *testing.T) {
		calc, err := services.NewETACalculator(50)

		require.NoError(t, err)
		assert.InDelta(t, 50, calc.SpeedKmPerHour(), 1e-9)
	})

	t.Run("rejects_non_positive_speed", func(t *testing.T) {
		_, err := services.NewETACalculator(0)
		require.Error(t, err)

		_, err = services.NewETACalculator(-10)
		require.Error(t, err)
	})
}

func TestETACalculator_EstimateArrival(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("zero_distance_yields_reference_time", func(t *testing.T) {
		calc, _ := services.NewETACalculator(50)
		loc, _ := kernel.NewLocation(40.7128, -74.0060)

		eta, err := calc.EstimateArrival(now, loc, loc)

		require.NoError(t, err)
		assert.Equal(t, now, eta)
	})

	t.Run("one_degree_of_latitude_at_fifty_kmh", func(t *testing.T) {
		calc, _ := services.NewETACalculator(50)
		from, _ := kernel.NewLocation(0, 0)
		to, _ := kernel.NewLocation(1, 0)

		eta, err := calc.EstimateArrival(now, from, to)

		require.NoError(t, err)
		// ~111.2 km at 50 km/h is ~2.22 hours.
		assert.InDelta(t, 2.22, eta.Sub(now).Hours(), 0.05)
	})

	t.Run("closer_position_yields_earlier_estimate", func(t *testing.T) {
		calc, _ := services.NewETACalculator(50)
		destination, _ := kernel.NewLocation(1, 0)
		far, _ := kernel.NewLocation(0, 0)
		near, _ := kernel.NewLocation(0.5, 0)

		farETA, err := calc.EstimateArrival(now, far, destination)
		require.NoError(t, err)
		nearETA, err := calc.EstimateArrival(now, near, destination)
		require.NoError(t, err)

		assert.True(t, nearETA.Before(farETA))
	})

	t.Run("faster_speed_yields_earlier_estimate", func(t *testing.T) {
		slow, _ := services.NewETACalculator(25)
		fast, _ := services.NewETACalculator(100)
		from, _ := kernel.NewLocation(0, 0)
		to, _ := kernel.NewLocation(1, 0)

		slowETA, err := slow.EstimateArrival(now, from, to)
		require.NoError(t, err)
		fastETA, err := fast.EstimateArrival(now, from, to)
		require.NoError(t, err)

		assert.True(t, fastETA.Before(slowETA))
	})

	t.Run("rejects_unconstructed_locations", func(t *testing.T) {
		calc, _ := services.NewETACalculator(50)
		loc, _ := kernel.NewLocation(0, 0)

		_, err := calc.EstimateArrival(now, kernel.Location{}, loc)
		require.Error(t, err)

		_, err = calc.EstimateArrival(now, loc, kernel.Location{})
		require.Error(t, err)
	})
}
