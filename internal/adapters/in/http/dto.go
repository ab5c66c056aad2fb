package http

import (
	"fmt"
	"time"

	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
)

// Error is the uniform problem body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one line of a new order.
type OrderItemRequest struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Number       string             `json:"number"`
	ContractorID string             `json:"contractor_id"`
	SupplierID   string             `json:"supplier_id"`
	Items        []OrderItemRequest `json:"items"`
}

// AdvanceOrderRequest carries the target edge of a status transition. The
// expected status is the caller's last observed one; a mismatch is rejected
// with 409 instead of silently overwriting a concurrent change.
type AdvanceOrderRequest struct {
	Target   string `json:"target"`
	Expected string `json:"expected"`
}

// CancelOrderRequest carries the caller's last observed status.
type CancelOrderRequest struct {
	Expected string `json:"expected"`
}

// AssignDeliveryRequest is the body of POST /api/v1/orders/:orderID/delivery.
type AssignDeliveryRequest struct {
	DriverID               string  `json:"driver_id"`
	DriverName             string  `json:"driver_name"`
	VehicleRef             string  `json:"vehicle_ref"`
	StartLatitude          float64 `json:"start_latitude"`
	StartLongitude         float64 `json:"start_longitude"`
	DestLatitude           float64 `json:"dest_latitude"`
	DestLongitude          float64 `json:"dest_longitude"`
	PlannedDurationSeconds int64   `json:"planned_duration_seconds"`
}

// CompleteDeliveryRequest carries the proof-of-delivery artifact references.
type CompleteDeliveryRequest struct {
	ImageRef     string `json:"image_ref"`
	SignatureRef string `json:"signature_ref"`
	Expected     string `json:"expected"`
}

// OpenDisputeRequest is the body of POST /api/v1/orders/:orderID/disputes.
type OpenDisputeRequest struct {
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Expected string `json:"expected"`
}

// AddDisputeMessageRequest appends one message to a dispute thread.
type AddDisputeMessageRequest struct {
	Body string `json:"body"`
}

// ResolveDisputeRequest carries the administrator's decision.
type ResolveDisputeRequest struct {
	Outcome string `json:"outcome"`
}

// SubmitReviewRequest is the body of POST /api/v1/orders/:orderID/review.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// AskDeliveryQuestionRequest is a free-form question about a delivery.
type AskDeliveryQuestionRequest struct {
	Question string `json:"question"`
}

// CreatedResponse returns the server-assigned identifier of a new resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// DeliveryResponse describes delivery progress for an order.
type DeliveryResponse struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	DriverName  string    `json:"driver_name"`
	VehicleRef  string    `json:"vehicle_ref"`
	Progress    float64   `json:"progress"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ETA         time.Time `json:"eta"`
	PlannedETA  time.Time `json:"planned_eta"`
}

// AnswerResponse carries the advisory answer to a delivery question.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// CartItemResponse is one proposed cart line of a reorder.
type CartItemResponse struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// ReorderResponse is the cart proposal built from a past order.
type ReorderResponse struct {
	OrderID          string             `json:"order_id"`
	Success          bool               `json:"success"`
	Items            []CartItemResponse `json:"items"`
	UnavailableCount int                `json:"unavailable_count"`
}

// ReviewEligibilityResponse answers whether the order can be reviewed.
type ReviewEligibilityResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// NotificationResponse is one feed entry.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	SubjectID string    `json:"subject_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

// The wire protocol uses status, role and outcome names, not ordinals, so
// clients stay readable and the internal numbering can shift.

func orderStatusFromString(s string) (order.Status, error) {
	statuses := map[string]order.Status{
		"New":            order.New,
		"Processing":     order.Processing,
		"ReadyForPickup": order.ReadyForPickup,
		"OutForDelivery": order.OutForDelivery,
		"Completed":      order.Completed,
		"Cancelled":      order.Cancelled,
		"Disputed":       order.Disputed,
	}
	status, ok := statuses[s]
	if !ok {
		return 0, fmt.Errorf("%q is not a valid order status", s)
	}
	return status, nil
}

func roleFromString(s string) (services.Role, error) {
	roles := map[string]services.Role{
		"Contractor": services.RoleContractor,
		"Supplier":   services.RoleSupplier,
		"Driver":     services.RoleDriver,
		"Admin":      services.RoleAdmin,
	}
	role, ok := roles[s]
	if !ok {
		return services.RoleUnknown, fmt.Errorf("%q is not a valid role", s)
	}
	return role, nil
}

func outcomeFromString(s string) (dispute.Outcome, error) {
	outcomes := map[string]dispute.Outcome{
		"CancelOrder":    dispute.OutcomeCancelOrder,
		"CompleteOrder":  dispute.OutcomeCompleteOrder,
		"RemainDisputed": dispute.OutcomeRemainDisputed,
	}
	outcome, ok := outcomes[s]
	if !ok {
		return dispute.OutcomeNone, fmt.Errorf("%q is not a valid resolution outcome", s)
	}
	return outcome, nil
}
