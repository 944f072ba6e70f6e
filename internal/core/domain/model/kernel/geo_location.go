package kernel

import (
	"errors"
	"fmt"
	"math"

	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrGeoLocationIsNotConstructed is returned when a zero-value GeoLocation is used.
var ErrGeoLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"geo location must be created via NewGeoLocation")

// GeoLocation is a WGS84 coordinate pair. Hubs carry one so the tracking view can
// report how far an order travels between the seller hub and the buyer hub.
//
// Example:
//
//	kochi, _ := kernel.NewGeoLocation(9.9312, 76.2673)
//	tvm, _ := kernel.NewGeoLocation(8.5241, 76.9366)
//	km, _ := kochi.Distance(tvm) // ~175
type GeoLocation struct { //nolint:recvcheck // pointer setters used only during construction
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoLocation validates both coordinates and joins all range violations into one error.
func NewGeoLocation(latitude, longitude float64) (GeoLocation, error) {
	loc := GeoLocation{guard: guard.NewConstructorGuard()}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return GeoLocation{}, err
	}

	return loc, nil
}

// Validate returns ErrGeoLocationIsNotConstructed for the zero value.
func (l GeoLocation) Validate() error {
	return l.guard.Validate(ErrGeoLocationIsNotConstructed)
}

func (l GeoLocation) Latitude() float64  { return l.latitude }
func (l GeoLocation) Longitude() float64 { return l.longitude }

// IsSet reports whether the coordinates were filled in. Seeded hubs start at 0,0
// until operations records the real site.
func (l GeoLocation) IsSet() bool {
	return l.Validate() == nil && (l.latitude != 0 || l.longitude != 0)
}

func (l GeoLocation) String() string {
	return fmt.Sprintf("GeoLocation(%.4f,%.4f)", l.latitude, l.longitude)
}

// Distance returns the great-circle (haversine) distance in kilometres.
func (l GeoLocation) Distance(other GeoLocation) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := toRadians(other.latitude - l.latitude)
	dLon := toRadians(other.longitude - l.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(l.latitude))*math.Cos(toRadians(other.latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

func (l *GeoLocation) setLatitude(v float64) error {
	if math.IsNaN(v) || v < LatitudeMin || v > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", v, LatitudeMin, LatitudeMax)
	}
	l.latitude = v
	return nil
}

func (l *GeoLocation) setLongitude(v float64) error {
	if math.IsNaN(v) || v < LongitudeMin || v > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", v, LongitudeMin, LongitudeMax)
	}
	l.longitude = v
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
