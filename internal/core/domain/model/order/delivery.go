package order

import (
	"errors"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/pkg/errs"
	"supplyflow/internal/pkg/guard"
)

// ErrDeliveryDetailsAreNotConstructed is returned when DeliveryDetails were
// not created via NewDeliveryDetails.
var ErrDeliveryDetailsAreNotConstructed = errors.New(
	"DeliveryDetails must be created via NewDeliveryDetails constructor")

// ErrProofOfDeliveryIsNotConstructed is returned when a ProofOfDelivery was
// not created via NewProofOfDelivery.
var ErrProofOfDeliveryIsNotConstructed = errors.New(
	"ProofOfDelivery must be created via NewProofOfDelivery constructor")

// DeliveryDetails is an immutable value object describing the delivery leg of
// an order: who drives, with what vehicle, from where to where, and how long
// the trip is planned to take.
//
// The planned ETA is derived (assignedAt + plannedDuration) and never stored
// as a moving target; live ETA projection is the ETAProjector's job.
type DeliveryDetails struct { //nolint:recvcheck //using for validation
	driverID        kernel.UUID
	driverName      string
	vehicleRef      string
	startCoords     kernel.GeoPoint
	destCoords      kernel.GeoPoint
	plannedDuration time.Duration
	assignedAt      time.Time

	guard guard.ConstructorGuard
}

// NewDeliveryDetails creates validated delivery details.
func NewDeliveryDetails(
	driverID kernel.UUID,
	driverName string,
	vehicleRef string,
	startCoords kernel.GeoPoint,
	destCoords kernel.GeoPoint,
	plannedDuration time.Duration,
	assignedAt time.Time,
) (DeliveryDetails, error) {
	details := DeliveryDetails{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		details.setDriver(driverID, driverName),
		details.setVehicleRef(vehicleRef),
		details.setRoute(startCoords, destCoords),
		details.setSchedule(plannedDuration, assignedAt),
	); err != nil {
		return DeliveryDetails{}, err
	}

	return details, nil
}

// Validate ensures the details were created through the constructor.
func (d DeliveryDetails) Validate() error {
	return d.guard.Validate(ErrDeliveryDetailsAreNotConstructed)
}

// DriverID returns the assigned driver's identifier.
func (d DeliveryDetails) DriverID() kernel.UUID {
	return d.driverID
}

// DriverName returns the assigned driver's display name.
func (d DeliveryDetails) DriverName() string {
	return d.driverName
}

// VehicleRef returns the vehicle registration reference.
func (d DeliveryDetails) VehicleRef() string {
	return d.vehicleRef
}

// StartCoords returns the pickup coordinates.
func (d DeliveryDetails) StartCoords() kernel.GeoPoint {
	return d.startCoords
}

// DestCoords returns the destination coordinates.
func (d DeliveryDetails) DestCoords() kernel.GeoPoint {
	return d.destCoords
}

// PlannedDuration returns the planned trip duration.
func (d DeliveryDetails) PlannedDuration() time.Duration {
	return d.plannedDuration
}

// AssignedAt returns the moment the delivery leg was assigned.
func (d DeliveryDetails) AssignedAt() time.Time {
	return d.assignedAt
}

// PlannedETA returns the originally promised arrival time.
func (d DeliveryDetails) PlannedETA() time.Time {
	return d.assignedAt.Add(d.plannedDuration)
}

func (d *DeliveryDetails) setDriver(driverID kernel.UUID, driverName string) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if driverName == "" {
		return errs.NewValueIsRequiredError("driverName")
	}

	d.driverID = driverID
	d.driverName = driverName
	return nil
}

func (d *DeliveryDetails) setVehicleRef(vehicleRef string) error {
	if vehicleRef == "" {
		return errs.NewValueIsRequiredError("vehicleRef")
	}

	d.vehicleRef = vehicleRef
	return nil
}

func (d *DeliveryDetails) setRoute(startCoords, destCoords kernel.GeoPoint) error {
	if err := errors.Join(startCoords.Validate(), destCoords.Validate()); err != nil {
		return err
	}

	d.startCoords = startCoords
	d.destCoords = destCoords
	return nil
}

func (d *DeliveryDetails) setSchedule(plannedDuration time.Duration, assignedAt time.Time) error {
	if plannedDuration <= 0 {
		return errs.NewValueIsInvalidError("plannedDuration")
	}
	if assignedAt.IsZero() {
		return errs.NewValueIsRequiredError("assignedAt")
	}

	d.plannedDuration = plannedDuration
	d.assignedAt = assignedAt
	return nil
}

// ProofOfDelivery is a write-once artifact evidencing physical handover:
// a photo reference plus a signature reference and the capture moment.
//
// The refs are not validated for emptiness here; CompleteDelivery enforces
// that, so the missing-artifact failure surfaces as ErrMissingArtifact at the
// transition rather than as a construction error.
type ProofOfDelivery struct {
	imageRef     string
	signatureRef string
	capturedAt   time.Time

	guard guard.ConstructorGuard
}

// NewProofOfDelivery creates a proof-of-delivery artifact.
func NewProofOfDelivery(imageRef, signatureRef string, capturedAt time.Time) (ProofOfDelivery, error) {
	if capturedAt.IsZero() {
		return ProofOfDelivery{}, errs.NewValueIsRequiredError("capturedAt")
	}

	return ProofOfDelivery{
		imageRef:     imageRef,
		signatureRef: signatureRef,
		capturedAt:   capturedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the artifact was created through the constructor.
func (p ProofOfDelivery) Validate() error {
	return p.guard.Validate(ErrProofOfDeliveryIsNotConstructed)
}

// ImageRef returns the handover photo reference.
func (p ProofOfDelivery) ImageRef() string {
	return p.imageRef
}

// SignatureRef returns the recipient signature reference.
func (p ProofOfDelivery) SignatureRef() string {
	return p.signatureRef
}

// CapturedAt returns the capture timestamp.
func (p ProofOfDelivery) CapturedAt() time.Time {
	return p.capturedAt
}

// IsComplete reports whether both artifact references are present.
func (p ProofOfDelivery) IsComplete() bool {
	return p.imageRef != "" && p.signatureRef != ""
}
