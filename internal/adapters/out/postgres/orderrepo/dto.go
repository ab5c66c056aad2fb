// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The aggregate flattens into one orders row plus one
// order_items row per line; delivery and proof-of-delivery live as nullable
// column groups on the order row so the status guard and the artifact write
// share a single UPDATE.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"uniqueIndex"`
	ContractorID uuid.UUID `gorm:"type:uuid;index"`
	SupplierID   uuid.UUID `gorm:"type:uuid;index"`
	Status       int       `gorm:"index"`
	TotalCents   int64
	CreatedAt    time.Time

	Items []ItemDTO `gorm:"foreignKey:OrderID;references:ID"`

	DeliveryDriverID        *uuid.UUID `gorm:"type:uuid"`
	DeliveryDriverName      *string
	DeliveryVehicleRef      *string
	DeliveryStartLat        *float64
	DeliveryStartLon        *float64
	DeliveryDestLat         *float64
	DeliveryDestLon         *float64
	DeliveryPlannedDuration *int64
	DeliveryAssignedAt      *time.Time

	PodImageRef     *string
	PodSignatureRef *string
	PodCapturedAt   *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Position preserves the original item
// order; lines are immutable once the order is created.
type ItemDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position       int       `gorm:"primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid"`
	Name           string
	Quantity       int
	UnitPriceCents int64
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number(),
		ContractorID: aggregate.ContractorID().Bytes(),
		SupplierID:   aggregate.SupplierID().Bytes(),
		Status:       int(aggregate.Status()),
		TotalCents:   aggregate.TotalCents(),
		CreatedAt:    aggregate.CreatedAt(),
	}

	for i, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:        dto.ID,
			Position:       i,
			ProductID:      item.ProductID().Bytes(),
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		})
	}

	if delivery := aggregate.Delivery(); delivery != nil {
		driverID := delivery.DriverID().Bytes()
		driverName := delivery.DriverName()
		vehicleRef := delivery.VehicleRef()
		startLat, startLon := delivery.StartCoords().Latitude(), delivery.StartCoords().Longitude()
		destLat, destLon := delivery.DestCoords().Latitude(), delivery.DestCoords().Longitude()
		plannedDuration := int64(delivery.PlannedDuration())
		assignedAt := delivery.AssignedAt()

		dto.DeliveryDriverID = &driverID
		dto.DeliveryDriverName = &driverName
		dto.DeliveryVehicleRef = &vehicleRef
		dto.DeliveryStartLat = &startLat
		dto.DeliveryStartLon = &startLon
		dto.DeliveryDestLat = &destLat
		dto.DeliveryDestLon = &destLon
		dto.DeliveryPlannedDuration = &plannedDuration
		dto.DeliveryAssignedAt = &assignedAt
	}

	if pod := aggregate.ProofOfDelivery(); pod != nil {
		imageRef := pod.ImageRef()
		signatureRef := pod.SignatureRef()
		capturedAt := pod.CapturedAt()

		dto.PodImageRef = &imageRef
		dto.PodSignatureRef = &signatureRef
		dto.PodCapturedAt = &capturedAt
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	contractorID, err := kernel.UUIDFromBytes(dto.ContractorID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, productErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if productErr != nil {
			return nil, productErr
		}
		item, itemErr := order.NewLineItem(
			productID, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPriceCents)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var delivery *order.DeliveryDetails
	if dto.DeliveryAssignedAt != nil {
		driverID, driverErr := kernel.UUIDFromBytes((*dto.DeliveryDriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		start, startErr := kernel.NewGeoPoint(*dto.DeliveryStartLat, *dto.DeliveryStartLon)
		if startErr != nil {
			return nil, startErr
		}
		dest, destErr := kernel.NewGeoPoint(*dto.DeliveryDestLat, *dto.DeliveryDestLon)
		if destErr != nil {
			return nil, destErr
		}

		details, detailsErr := order.NewDeliveryDetails(
			driverID, *dto.DeliveryDriverName, *dto.DeliveryVehicleRef,
			start, dest,
			time.Duration(*dto.DeliveryPlannedDuration), *dto.DeliveryAssignedAt,
		)
		if detailsErr != nil {
			return nil, detailsErr
		}
		delivery = &details
	}

	var pod *order.ProofOfDelivery
	if dto.PodCapturedAt != nil {
		artifact, podErr := order.NewProofOfDelivery(
			*dto.PodImageRef, *dto.PodSignatureRef, *dto.PodCapturedAt)
		if podErr != nil {
			return nil, podErr
		}
		pod = &artifact
	}

	return order.RestoreOrder(
		id, dto.Number, contractorID, supplierID, items,
		order.Status(dto.Status), dto.CreatedAt, delivery, pod,
	)
}
