package services

import (
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
)

// DeliveryProjection is a snapshot of a delivery leg derived for a single
// moment in time. It is never persisted.
type DeliveryProjection struct {
	// Progress is the fraction of the planned duration already elapsed,
	// clamped to [0, 1].
	Progress float64

	// Position is the vehicle position estimated by linear interpolation
	// between the start and destination coordinates.
	Position kernel.GeoPoint

	// ETA is the projected arrival time. It converges to the observation
	// moment as progress approaches 1.
	ETA time.Time
}

// ETAProjector is a domain service that projects the state of a delivery leg
// from its immutable details and the wall clock.
//
// The projection is a pure function:
//
//	progress = clamp(elapsed / plannedDuration, 0, 1)
//	position = lerp(start, dest, progress)
//	eta      = now + (plannedETA - now) * (1 - progress)
//
// Two observers asking at the same moment therefore always get the same
// answer, and nothing about the projection is ever written back.
type ETAProjector struct{}

// NewETAProjector creates a new ETAProjector instance.
func NewETAProjector() ETAProjector {
	return ETAProjector{}
}

// Project derives the delivery snapshot for the given observation moment.
// Before the leg starts progress is 0 and the position is the start point;
// after the planned duration elapses progress pins at 1, the position at the
// destination, and the ETA at the observation moment itself.
func (p ETAProjector) Project(details order.DeliveryDetails, now time.Time) (DeliveryProjection, error) {
	if err := details.Validate(); err != nil {
		return DeliveryProjection{}, err
	}

	elapsed := now.Sub(details.AssignedAt())
	progress := clamp(elapsed.Seconds()/details.PlannedDuration().Seconds(), 0, 1)

	position, err := lerpGeo(details.StartCoords(), details.DestCoords(), progress)
	if err != nil {
		return DeliveryProjection{}, err
	}

	remaining := time.Duration(float64(details.PlannedETA().Sub(now)) * (1 - progress))

	return DeliveryProjection{
		Progress: progress,
		Position: position,
		ETA:      now.Add(remaining),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerpGeo interpolates coordinates componentwise. Both endpoints are valid
// points, so the interpolant stays inside the coordinate bounds.
func lerpGeo(from, to kernel.GeoPoint, t float64) (kernel.GeoPoint, error) {
	return kernel.NewGeoPoint(
		from.Latitude()+(to.Latitude()-from.Latitude())*t,
		from.Longitude()+(to.Longitude()-from.Longitude())*t,
	)
}
