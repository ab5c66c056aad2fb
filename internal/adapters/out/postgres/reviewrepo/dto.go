// Package reviewrepo provides data transfer objects and mapping functions for
// review persistence. The unique index on order_id is what ultimately enforces
// the one-review-per-order rule under concurrency.
package reviewrepo

import (
	"time"

	"github.com/google/uuid"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/review"
)

// ReviewDTO represents the database structure for persisting reviews.
type ReviewDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	ContractorID uuid.UUID `gorm:"type:uuid"`
	SupplierID   uuid.UUID `gorm:"type:uuid;index"`
	Rating       int
	Comment      string
	CreatedAt    time.Time
}

// TableName specifies the database table name for review entities.
func (ReviewDTO) TableName() string {
	return "reviews"
}

// fromDomain converts a review domain aggregate to its database
// representation.
func fromDomain(aggregate *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:           aggregate.ID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
		ContractorID: aggregate.ContractorID().Bytes(),
		SupplierID:   aggregate.SupplierID().Bytes(),
		Rating:       aggregate.Rating(),
		Comment:      aggregate.Comment(),
		CreatedAt:    aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a review domain aggregate using
// RestoreReview.
func toDomain(dto ReviewDTO) (*review.Review, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
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

	return review.RestoreReview(
		id, orderID, contractorID, supplierID,
		dto.Rating, dto.Comment, dto.CreatedAt,
	)
}
