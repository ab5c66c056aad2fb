// Package disputerepo provides data transfer objects and mapping functions
// for dispute persistence. A dispute maps to one disputes row plus one
// dispute_messages row per thread entry; the thread is append-only, so updates
// upsert new messages and never rewrite old ones.
package disputerepo

import (
	"time"

	"github.com/google/uuid"

	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/kernel"
)

// DisputeDTO represents the database structure for persisting dispute
// aggregates.
type DisputeDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	ContractorID uuid.UUID `gorm:"type:uuid"`
	SupplierID   uuid.UUID `gorm:"type:uuid"`
	Reason       string
	Status       int `gorm:"index"`
	CreatedAt    time.Time

	Messages []MessageDTO `gorm:"foreignKey:DisputeID;references:ID"`

	ResolvedBy *uuid.UUID `gorm:"type:uuid"`
	Outcome    int
	ResolvedAt *time.Time
}

// TableName specifies the database table name for dispute entities.
func (DisputeDTO) TableName() string {
	return "disputes"
}

// MessageDTO represents one thread entry. Position preserves insertion order.
type MessageDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisputeID  uuid.UUID `gorm:"type:uuid;index"`
	Position   int
	AuthorID   uuid.UUID `gorm:"type:uuid"`
	AuthorName string
	Body       string
	SentAt     time.Time
}

// TableName specifies the database table name for dispute message entities.
func (MessageDTO) TableName() string {
	return "dispute_messages"
}

// fromDomain converts a dispute domain aggregate to its database
// representation.
func fromDomain(aggregate *dispute.Dispute) DisputeDTO {
	dto := DisputeDTO{
		ID:           aggregate.ID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
		ContractorID: aggregate.ContractorID().Bytes(),
		SupplierID:   aggregate.SupplierID().Bytes(),
		Reason:       aggregate.Reason(),
		Status:       int(aggregate.Status()),
		CreatedAt:    aggregate.CreatedAt(),
		Outcome:      int(aggregate.Outcome()),
	}

	for i, m := range aggregate.Messages() {
		dto.Messages = append(dto.Messages, MessageDTO{
			ID:         m.ID().Bytes(),
			DisputeID:  dto.ID,
			Position:   i,
			AuthorID:   m.AuthorID().Bytes(),
			AuthorName: m.AuthorName(),
			Body:       m.Body(),
			SentAt:     m.SentAt(),
		})
	}

	if resolvedBy := aggregate.ResolvedBy(); resolvedBy != nil {
		raw := resolvedBy.Bytes()
		dto.ResolvedBy = &raw
	}
	dto.ResolvedAt = aggregate.ResolvedAt()

	return dto
}

// toDomain converts a database DTO to a dispute domain aggregate using
// RestoreDispute.
func toDomain(dto DisputeDTO) (*dispute.Dispute, error) {
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

	messages := make([]dispute.Message, 0, len(dto.Messages))
	for _, messageDTO := range dto.Messages {
		messageID, messageErr := kernel.UUIDFromBytes(messageDTO.ID[:])
		if messageErr != nil {
			return nil, messageErr
		}
		authorID, authorErr := kernel.UUIDFromBytes(messageDTO.AuthorID[:])
		if authorErr != nil {
			return nil, authorErr
		}

		m, messageErr := dispute.NewMessage(
			messageID, authorID, messageDTO.AuthorName, messageDTO.Body, messageDTO.SentAt)
		if messageErr != nil {
			return nil, messageErr
		}
		messages = append(messages, m)
	}

	var resolvedBy *kernel.UUID
	if dto.ResolvedBy != nil {
		adminID, adminErr := kernel.UUIDFromBytes((*dto.ResolvedBy)[:])
		if adminErr != nil {
			return nil, adminErr
		}
		resolvedBy = &adminID
	}

	return dispute.RestoreDispute(
		id, orderID, contractorID, supplierID, dto.Reason,
		messages, dispute.Status(dto.Status), dto.CreatedAt,
		resolvedBy, dispute.Outcome(dto.Outcome), dto.ResolvedAt,
	)
}
