package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/errs"
)

// DescribeDeliveryQueryHandler reads the delivery columns straight off the
// orders table and lets the projector derive the live part of the answer.
type DescribeDeliveryQueryHandler struct {
	db        *gorm.DB
	projector services.ETAProjector
	policy    services.AccessPolicy
}

// NewDescribeDeliveryQueryHandler creates a handler for delivery snapshots.
func NewDescribeDeliveryQueryHandler(db *gorm.DB) DescribeDeliveryQueryHandler {
	return DescribeDeliveryQueryHandler{
		db:        db,
		projector: services.NewETAProjector(),
		policy:    services.NewAccessPolicy(),
	}
}

// Handle executes the query. Orders without an assigned delivery yield
// order.ErrDeliveryNotAssigned.
func (h DescribeDeliveryQueryHandler) Handle(
	ctx context.Context,
	query DescribeDeliveryQuery,
) (DescribeDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DescribeDeliveryQueryResponse{}, err
	}

	if err := h.policy.Authorize(services.OpDescribeDelivery, query.ActorRole()); err != nil {
		return DescribeDeliveryQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			delivery_driver_id,
			delivery_driver_name,
			delivery_vehicle_ref,
			delivery_start_lat,
			delivery_start_lon,
			delivery_dest_lat,
			delivery_dest_lon,
			delivery_planned_duration,
			delivery_assigned_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id              uuid.UUID
		number          string
		status          int
		driverID        uuid.NullUUID
		driverName      sql.NullString
		vehicleRef      sql.NullString
		startLat        sql.NullFloat64
		startLon        sql.NullFloat64
		destLat         sql.NullFloat64
		destLon         sql.NullFloat64
		plannedDuration sql.NullInt64
		assignedAt      sql.NullTime
	)

	err := row.Scan(
		&id, &number, &status,
		&driverID, &driverName, &vehicleRef,
		&startLat, &startLon, &destLat, &destLon,
		&plannedDuration, &assignedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return DescribeDeliveryQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return DescribeDeliveryQueryResponse{}, err
	}

	if !assignedAt.Valid {
		return DescribeDeliveryQueryResponse{}, order.ErrDeliveryNotAssigned
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return DescribeDeliveryQueryResponse{}, err
	}

	start, err := kernel.NewGeoPoint(startLat.Float64, startLon.Float64)
	if err != nil {
		return DescribeDeliveryQueryResponse{}, err
	}
	dest, err := kernel.NewGeoPoint(destLat.Float64, destLon.Float64)
	if err != nil {
		return DescribeDeliveryQueryResponse{}, err
	}

	assignedDriver, err := kernel.UUIDFromBytes(driverID.UUID[:])
	if err != nil {
		return DescribeDeliveryQueryResponse{}, err
	}

	details, err := order.NewDeliveryDetails(
		assignedDriver, driverName.String, vehicleRef.String,
		start, dest,
		time.Duration(plannedDuration.Int64), assignedAt.Time,
	)
	if err != nil {
		return DescribeDeliveryQueryResponse{}, err
	}

	projection, err := h.projector.Project(details, time.Now().UTC())
	if err != nil {
		return DescribeDeliveryQueryResponse{}, err
	}

	return DescribeDeliveryQueryResponse{
		OrderID:     orderID,
		OrderNumber: number,
		Status:      order.Status(status),
		DriverName:  driverName.String,
		VehicleRef:  vehicleRef.String,
		Progress:    projection.Progress,
		Position:    projection.Position,
		ETA:         projection.ETA,
		PlannedETA:  details.PlannedETA(),
	}, nil
}
