package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/pkg/errs"
)

// CanReviewQueryHandler answers review eligibility with a single read: the
// order must exist, belong to the contractor, be completed and not yet
// reviewed.
type CanReviewQueryHandler struct {
	db *gorm.DB
}

// NewCanReviewQueryHandler creates a handler for review eligibility checks.
func NewCanReviewQueryHandler(db *gorm.DB) CanReviewQueryHandler {
	return CanReviewQueryHandler{db: db}
}

// Handle executes the query. Ineligibility is data, not an error: only a
// missing order or a storage failure is returned as an error.
func (h CanReviewQueryHandler) Handle(
	ctx context.Context,
	query CanReviewQuery,
) (CanReviewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CanReviewQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.contractor_id,
			o.status,
			EXISTS (SELECT 1 FROM reviews r WHERE r.order_id = o.id) AS reviewed
		FROM orders o
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		contractorID uuid.UUID
		status       int
		reviewed     bool
	)
	err := row.Scan(&contractorID, &status, &reviewed)
	if errors.Is(err, sql.ErrNoRows) {
		return CanReviewQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return CanReviewQueryResponse{}, err
	}

	owner, err := kernel.UUIDFromBytes(contractorID[:])
	if err != nil {
		return CanReviewQueryResponse{}, err
	}

	switch {
	case !owner.IsEqual(query.ContractorID()):
		return CanReviewQueryResponse{Reason: "order belongs to another contractor"}, nil
	case order.Status(status) != order.Completed:
		return CanReviewQueryResponse{Reason: "order is not completed"}, nil
	case reviewed:
		return CanReviewQueryResponse{Reason: "order already has a review"}, nil
	default:
		return CanReviewQueryResponse{Allowed: true}, nil
	}
}
