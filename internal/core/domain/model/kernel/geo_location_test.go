package kernel_test

import (
	"testing"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoLocation(t *testing.T) {
	t.Run("accepts boundary coordinates", func(t *testing.T) {
		loc, err := kernel.NewGeoLocation(kernel.LatitudeMax, kernel.LongitudeMin)

		require.NoError(t, err)
		assert.InDelta(t, 90.0, loc.Latitude(), 1e-9)
		assert.InDelta(t, -180.0, loc.Longitude(), 1e-9)
	})

	t.Run("joins both range errors", func(t *testing.T) {
		_, err := kernel.NewGeoLocation(91, 181)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var loc kernel.GeoLocation

		assert.Equal(t, kernel.ErrGeoLocationIsNotConstructed, loc.Validate())
		assert.False(t, loc.IsSet())
	})
}

func TestGeoLocation_Distance(t *testing.T) {
	kochi, _ := kernel.NewGeoLocation(9.9312, 76.2673)
	tvm, _ := kernel.NewGeoLocation(8.5241, 76.9366)

	t.Run("is roughly the road-free distance between Kochi and Thiruvananthapuram", func(t *testing.T) {
		km, err := kochi.Distance(tvm)

		require.NoError(t, err)
		assert.InDelta(t, 173.0, km, 5.0)
	})

	t.Run("is symmetric and zero to itself", func(t *testing.T) {
		there, _ := kochi.Distance(tvm)
		back, _ := tvm.Distance(kochi)
		self, _ := kochi.Distance(kochi)

		assert.InDelta(t, there, back, 1e-9)
		assert.InDelta(t, 0.0, self, 1e-9)
	})

	t.Run("fails for unconstructed locations", func(t *testing.T) {
		var zero kernel.GeoLocation

		_, err := kochi.Distance(zero)

		require.ErrorIs(t, err, kernel.ErrGeoLocationIsNotConstructed)
	})
}
