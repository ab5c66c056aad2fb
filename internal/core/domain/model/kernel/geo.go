package kernel

import (
	"errors"
	"fmt"

	"supplyflow/internal/pkg/errs"
	"supplyflow/internal/pkg/guard"
)

const (
	// GeoMinLatitude is the minimum valid latitude in degrees.
	GeoMinLatitude = -90.0
	// GeoMaxLatitude is the maximum valid latitude in degrees.
	GeoMaxLatitude = 90.0
	// GeoMinLongitude is the minimum valid longitude in degrees.
	GeoMinLongitude = -180.0
	// GeoMaxLongitude is the maximum valid longitude in degrees.
	GeoMaxLongitude = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a validated latitude and
// longitude pair in decimal degrees. The zero value is invalid; use
// NewGeoPoint.
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint, validating both coordinates against the
// WGS84 degree bounds.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created via NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < GeoMinLatitude || latitude > GeoMaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, GeoMinLatitude, GeoMaxLatitude)
	}

	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < GeoMinLongitude || longitude > GeoMaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, GeoMinLongitude, GeoMaxLongitude)
	}

	p.longitude = longitude
	return nil
}
