package commands

import (
	"errors"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/errs"
	"supplyflow/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand represents a request to attach a driver, a vehicle
// and a planned route to an order being prepared.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	driverID        kernel.UUID
	driverName      string
	vehicleRef      string
	startCoords     kernel.GeoPoint
	destCoords      kernel.GeoPoint
	plannedDuration time.Duration
	actorRole       services.Role

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates a command to assign a delivery leg.
func NewAssignDeliveryCommand(
	orderID kernel.UUID,
	driverID kernel.UUID,
	driverName string,
	vehicleRef string,
	startCoords kernel.GeoPoint,
	destCoords kernel.GeoPoint,
	plannedDuration time.Duration,
	actorRole services.Role,
) (AssignDeliveryCommand, error) {
	cmd := AssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriver(driverID, driverName),
		cmd.setVehicleRef(vehicleRef),
		cmd.setRoute(startCoords, destCoords),
		cmd.setPlannedDuration(plannedDuration),
		cmd.setActorRole(actorRole),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// OrderID returns the order receiving the delivery leg.
func (c AssignDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the assigned driver's identifier.
func (c AssignDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

// DriverName returns the assigned driver's display name.
func (c AssignDeliveryCommand) DriverName() string {
	return c.driverName
}

// VehicleRef returns the vehicle registration reference.
func (c AssignDeliveryCommand) VehicleRef() string {
	return c.vehicleRef
}

// StartCoords returns the pickup coordinates.
func (c AssignDeliveryCommand) StartCoords() kernel.GeoPoint {
	return c.startCoords
}

// DestCoords returns the destination coordinates.
func (c AssignDeliveryCommand) DestCoords() kernel.GeoPoint {
	return c.destCoords
}

// PlannedDuration returns the planned trip duration.
func (c AssignDeliveryCommand) PlannedDuration() time.Duration {
	return c.plannedDuration
}

// ActorRole returns the role of the caller.
func (c AssignDeliveryCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *AssignDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignDeliveryCommand) setDriver(driverID kernel.UUID, driverName string) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if driverName == "" {
		return errs.NewValueIsRequiredError("driverName")
	}
	c.driverID = driverID
	c.driverName = driverName
	return nil
}

func (c *AssignDeliveryCommand) setVehicleRef(vehicleRef string) error {
	if vehicleRef == "" {
		return errs.NewValueIsRequiredError("vehicleRef")
	}
	c.vehicleRef = vehicleRef
	return nil
}

func (c *AssignDeliveryCommand) setRoute(startCoords, destCoords kernel.GeoPoint) error {
	if err := errors.Join(startCoords.Validate(), destCoords.Validate()); err != nil {
		return err
	}
	c.startCoords = startCoords
	c.destCoords = destCoords
	return nil
}

func (c *AssignDeliveryCommand) setPlannedDuration(plannedDuration time.Duration) error {
	if plannedDuration <= 0 {
		return errs.NewValueIsInvalidError("plannedDuration")
	}
	c.plannedDuration = plannedDuration
	return nil
}

func (c *AssignDeliveryCommand) setActorRole(actorRole services.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}
