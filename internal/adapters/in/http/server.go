package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"supplyflow/internal/core/application/usecases/commands"
	"supplyflow/internal/core/application/usecases/queries"
	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/model/review"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/errs"
)

// Actor identity headers. Authentication sits in front of this service; by
// the time a request reaches it these headers carry a verified identity.
const (
	headerActorID   = "X-Actor-ID"
	headerActorName = "X-Actor-Name"
	headerActorRole = "X-Actor-Role"
)

// Handlers bundles every use case the HTTP surface exposes.
type Handlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	AdvanceOrder         commands.AdvanceOrderCommandHandler
	AssignDelivery       commands.AssignDeliveryCommandHandler
	CompleteDelivery     commands.CompleteDeliveryCommandHandler
	OpenDispute          commands.OpenDisputeCommandHandler
	AddDisputeMessage    commands.AddDisputeMessageCommandHandler
	AcceptSuggestion     commands.AcceptSuggestionCommandHandler
	ResolveDispute       commands.ResolveDisputeCommandHandler
	SubmitReview         commands.SubmitReviewCommandHandler
	MarkNotificationRead commands.MarkNotificationReadCommandHandler

	DescribeDelivery    queries.DescribeDeliveryQueryHandler
	AskDeliveryQuestion queries.AskDeliveryQuestionQueryHandler
	ReorderItems        queries.ReorderItemsQueryHandler
	CanReview           queries.CanReviewQueryHandler
	ListNotifications   queries.ListNotificationsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server over the given use case handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes binds every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/:orderID/advance", s.AdvanceOrder)
	v1.POST("/orders/:orderID/cancel", s.CancelOrder)
	v1.POST("/orders/:orderID/delivery", s.AssignDelivery)
	v1.POST("/orders/:orderID/delivery/complete", s.CompleteDelivery)
	v1.GET("/orders/:orderID/delivery", s.DescribeDelivery)
	v1.POST("/orders/:orderID/delivery/question", s.AskDeliveryQuestion)
	v1.POST("/orders/:orderID/disputes", s.OpenDispute)
	v1.GET("/orders/:orderID/reorder", s.ReorderItems)
	v1.POST("/orders/:orderID/review", s.SubmitReview)
	v1.GET("/orders/:orderID/review/eligibility", s.CanReview)

	v1.POST("/disputes/:disputeID/messages", s.AddDisputeMessage)
	v1.POST("/disputes/:disputeID/accept-suggestion", s.AcceptSuggestion)
	v1.POST("/disputes/:disputeID/resolve", s.ResolveDispute)

	v1.GET("/notifications", s.ListNotifications)
	v1.POST("/notifications/:notificationID/read", s.MarkNotificationRead)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	_, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	contractorID, err := kernel.UUIDFromString(req.ContractorID)
	if err != nil {
		return badRequest(ctx, "Invalid contractor id: "+err.Error())
	}
	supplierID, err := kernel.UUIDFromString(req.SupplierID)
	if err != nil {
		return badRequest(ctx, "Invalid supplier id: "+err.Error())
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return badRequest(ctx, "Invalid product id: "+err.Error())
		}
		items = append(items, commands.ItemInput{
			ProductID:      productID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, req.Number, contractorID, supplierID, items, role)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// AdvanceOrder handles POST /api/v1/orders/:orderID/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	_, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req AdvanceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	target, err := orderStatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	expected, err := orderStatusFromString(req.Expected)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, target, expected, role)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if err := s.handlers.AdvanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel. Cancellation is a
// transition to Cancelled and shares the advance machinery.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	_, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	expected, err := orderStatusFromString(req.Expected)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, order.Cancelled, expected, role)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	if err := s.handlers.AdvanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDelivery handles POST /api/v1/orders/:orderID/delivery.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	_, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req AssignDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}
	start, err := kernel.NewGeoPoint(req.StartLatitude, req.StartLongitude)
	if err != nil {
		return badRequest(ctx, "Invalid start coordinates: "+err.Error())
	}
	dest, err := kernel.NewGeoPoint(req.DestLatitude, req.DestLongitude)
	if err != nil {
		return badRequest(ctx, "Invalid destination coordinates: "+err.Error())
	}

	cmd, err := commands.NewAssignDeliveryCommand(
		orderID,
		driverID,
		req.DriverName,
		req.VehicleRef,
		start,
		dest,
		time.Duration(req.PlannedDurationSeconds)*time.Second,
		role,
	)
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}

	if err := s.handlers.AssignDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/orders/:orderID/delivery/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	_, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req CompleteDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	expected, err := orderStatusFromString(req.Expected)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, req.ImageRef, req.SignatureRef, expected, role)
	if err != nil {
		return badRequest(ctx, "Invalid completion data: "+err.Error())
	}

	if err := s.handlers.CompleteDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DescribeDelivery handles GET /api/v1/orders/:orderID/delivery.
func (s *Server) DescribeDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	_, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewDescribeDeliveryQuery(orderID, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.handlers.DescribeDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeliveryResponse{
		OrderID:     resp.OrderID.String(),
		OrderNumber: resp.OrderNumber,
		Status:      resp.Status.String(),
		DriverName:  resp.DriverName,
		VehicleRef:  resp.VehicleRef,
		Progress:    resp.Progress,
		Latitude:    resp.Position.Latitude(),
		Longitude:   resp.Position.Longitude(),
		ETA:         resp.ETA,
		PlannedETA:  resp.PlannedETA,
	})
}

// AskDeliveryQuestion handles POST /api/v1/orders/:orderID/delivery/question.
func (s *Server) AskDeliveryQuestion(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	_, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req AskDeliveryQuestionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewAskDeliveryQuestionQuery(orderID, req.Question, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.handlers.AskDeliveryQuestion.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AnswerResponse{Answer: resp.Answer})
}

// OpenDispute handles POST /api/v1/orders/:orderID/disputes.
func (s *Server) OpenDispute(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	actorID, actorName, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req OpenDisputeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	expected, err := orderStatusFromString(req.Expected)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	disputeID := kernel.NewUUID()
	cmd, err := commands.NewOpenDisputeCommand(
		disputeID, orderID, actorID, actorName, req.Reason, req.Message, expected, role)
	if err != nil {
		return badRequest(ctx, "Invalid dispute data: "+err.Error())
	}

	if err := s.handlers.OpenDispute.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: disputeID.String()})
}

// AddDisputeMessage handles POST /api/v1/disputes/:disputeID/messages.
func (s *Server) AddDisputeMessage(ctx echo.Context) error {
	disputeID, err := pathUUID(ctx, "disputeID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	actorID, actorName, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req AddDisputeMessageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddDisputeMessageCommand(disputeID, actorID, actorName, req.Body, role)
	if err != nil {
		return badRequest(ctx, "Invalid message data: "+err.Error())
	}

	if err := s.handlers.AddDisputeMessage.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptSuggestion handles POST /api/v1/disputes/:disputeID/accept-suggestion.
func (s *Server) AcceptSuggestion(ctx echo.Context) error {
	disputeID, err := pathUUID(ctx, "disputeID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	_, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAcceptSuggestionCommand(disputeID, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.AcceptSuggestion.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveDispute handles POST /api/v1/disputes/:disputeID/resolve.
func (s *Server) ResolveDispute(ctx echo.Context) error {
	disputeID, err := pathUUID(ctx, "disputeID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	actorID, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ResolveDisputeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	outcome, err := outcomeFromString(req.Outcome)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewResolveDisputeCommand(disputeID, actorID, outcome, role)
	if err != nil {
		return badRequest(ctx, "Invalid resolution data: "+err.Error())
	}

	if err := s.handlers.ResolveDispute.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReorderItems handles GET /api/v1/orders/:orderID/reorder.
func (s *Server) ReorderItems(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	actorID, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewReorderItemsQuery(orderID, actorID, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.handlers.ReorderItems.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]CartItemResponse, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = CartItemResponse{
			ProductID:      item.ProductID.String(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	}

	return ctx.JSON(http.StatusOK, ReorderResponse{
		OrderID:          resp.OrderID.String(),
		Success:          resp.Success,
		Items:            items,
		UnavailableCount: resp.UnavailableCount,
	})
}

// SubmitReview handles POST /api/v1/orders/:orderID/review.
func (s *Server) SubmitReview(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	actorID, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req SubmitReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	reviewID := kernel.NewUUID()
	cmd, err := commands.NewSubmitReviewCommand(reviewID, orderID, actorID, req.Rating, req.Comment, role)
	if err != nil {
		return badRequest(ctx, "Invalid review data: "+err.Error())
	}

	if err := s.handlers.SubmitReview.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: reviewID.String()})
}

// CanReview handles GET /api/v1/orders/:orderID/review/eligibility.
func (s *Server) CanReview(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	actorID, _, _, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewCanReviewQuery(orderID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.handlers.CanReview.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReviewEligibilityResponse{
		Allowed: resp.Allowed,
		Reason:  resp.Reason,
	})
}

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(ctx echo.Context) error {
	actorID, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewListNotificationsQuery(actorID, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.handlers.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	feed := make([]NotificationResponse, len(resp.Notifications))
	for i, view := range resp.Notifications {
		feed[i] = NotificationResponse{
			ID:        view.ID.String(),
			Kind:      view.Kind.String(),
			SubjectID: view.SubjectID.String(),
			Message:   view.Message,
			CreatedAt: view.CreatedAt,
			IsRead:    view.IsRead,
		}
	}

	return ctx.JSON(http.StatusOK, feed)
}

// MarkNotificationRead handles POST /api/v1/notifications/:notificationID/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	notificationID, err := pathUUID(ctx, "notificationID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	actorID, _, role, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, actorID, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.MarkNotificationRead.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errors.New("invalid " + name + ": " + err.Error())
	}
	return id, nil
}

func actor(ctx echo.Context) (kernel.UUID, string, services.Role, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
	if err != nil {
		return kernel.UUID{}, "", services.RoleUnknown,
			errors.New("missing or invalid " + headerActorID + " header")
	}
	role, err := roleFromString(ctx.Request().Header.Get(headerActorRole))
	if err != nil {
		return kernel.UUID{}, "", services.RoleUnknown,
			errors.New("missing or invalid " + headerActorRole + " header")
	}
	return id, ctx.Request().Header.Get(headerActorName), role, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps a use case failure onto an HTTP status. Stale expectations
// and duplicates are conflicts the caller can retry after a re-read; business
// rule rejections on well-formed requests come back as 422.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, order.ErrDeliveryNotAssigned):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrAccessDenied),
		errors.Is(err, dispute.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, order.ErrStaleState),
		errors.Is(err, order.ErrDuplicateDispute),
		errors.Is(err, review.ErrDuplicateReview),
		errors.Is(err, dispute.ErrDisputeClosed):
		status = http.StatusConflict
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrMissingArtifact),
		errors.Is(err, dispute.ErrNotMediationEligible),
		errors.Is(err, commands.ErrOrderNotCompleted):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
