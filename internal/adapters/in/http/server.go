package http

import (
	"context"
	"net/http"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type (
	createOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	createDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDeliveryCommand) (commands.CreateDeliveryResult, error)
	}
	approveDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.ApproveDeliveryCommand) error
	}
	rejectDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.RejectDeliveryCommand) error
	}
	updateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) error
	}
	updateDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDeliveryCommand) error
	}
	removeOrderHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveOrderFromDeliveryCommand) error
	}
	deleteDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteDeliveryCommand) error
	}
	getDeliveriesHandler interface {
		Handle(ctx context.Context, query queries.GetDeliveriesQuery) ([]queries.DeliveryView, error)
	}
	getDeliveryHandler interface {
		Handle(ctx context.Context, query queries.GetDeliveryQuery) (queries.DeliveryView, error)
	}
	getUnassignedOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetUnassignedOrdersQuery) ([]queries.OrderView, error)
	}
	decisionRecorder interface {
		RecordDecision(decision string)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder         createOrderHandler
	CreateDelivery      createDeliveryHandler
	ApproveDelivery     approveDeliveryHandler
	RejectDelivery      rejectDeliveryHandler
	UpdateOrderStatus   updateOrderStatusHandler
	UpdateDelivery      updateDeliveryHandler
	RemoveOrder         removeOrderHandler
	DeleteDelivery      deleteDeliveryHandler
	GetDeliveries       getDeliveriesHandler
	GetDelivery         getDeliveryHandler
	GetUnassignedOrders getUnassignedOrdersHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  decisionRecorder
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, metrics decisionRecorder) *Server {
	return &Server{
		handlers: handlers,
		metrics:  metrics,
	}
}

// CreateOrder handles POST /orders - imports an order into the tenant's backlog.
func (s *Server) CreateOrder(ctx echo.Context, tenantID kernel.UUID) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if body.ID != nil {
		id, err := idFromBody("order id", *body.ID)
		if err != nil {
			return fail(ctx, err)
		}
		orderID = id
	}

	cmd, err := commands.NewCreateOrderCommand(
		tenantID,
		orderID,
		body.PostalCode,
		kernel.WeightFromGrams(body.WeightGrams),
		kernel.MoneyFromCents(body.ValueCents),
		body.Address.toDomain(),
	)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: orderID.Bytes()})
}

// GetUnassignedOrders handles GET /orders/unassigned.
func (s *Server) GetUnassignedOrders(ctx echo.Context, tenantID kernel.UUID) error {
	query, err := queries.NewGetUnassignedOrdersQuery(tenantID)
	if err != nil {
		return fail(ctx, err)
	}

	views, err := s.handlers.GetUnassignedOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = orderFromView(v)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PATCH /orders/:orderId/status. The actor is the driver.
func (s *Server) UpdateOrderStatus(ctx echo.Context, tenantID, actorID, orderID kernel.UUID) error {
	var body OrderStatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(tenantID, actorID, orderID, status, body.Reason, body.Code)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDeliveries handles GET /deliveries.
func (s *Server) GetDeliveries(ctx echo.Context, tenantID kernel.UUID, params GetDeliveriesParams) error {
	var status *delivery.Status
	if params.Status != nil {
		parsed, err := delivery.ParseStatus(*params.Status)
		if err != nil {
			return fail(ctx, err)
		}
		status = &parsed
	}

	driverID, err := optionalID("driver id", params.DriverID)
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewGetDeliveriesQuery(tenantID, status, driverID)
	if err != nil {
		return fail(ctx, err)
	}

	views, err := s.handlers.GetDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]Delivery, len(views))
	for i, v := range views {
		response[i] = deliveryFromView(v)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDelivery handles POST /deliveries. The response says whether the route
// waits for a manager and why.
func (s *Server) CreateDelivery(ctx echo.Context, tenantID, actorID kernel.UUID) error {
	var body NewDelivery
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	refs, err := toOrderRefs(body.Orders)
	if err != nil {
		return fail(ctx, err)
	}
	driverID, err := idFromBody("driver id", body.DriverID)
	if err != nil {
		return fail(ctx, err)
	}
	vehicleID, err := idFromBody("vehicle id", body.VehicleID)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(tenantID, actorID, driverID, vehicleID, refs, body.Note, body.StartDate)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.handlers.CreateDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	if result.NeedsApproval {
		s.metrics.RecordDecision("needs_approval")
	} else {
		s.metrics.RecordDecision("auto_released")
	}

	reasons := result.Reasons
	if reasons == nil {
		reasons = []string{}
	}

	return ctx.JSON(http.StatusCreated, CreatedDelivery{
		Delivery:      deliveryFromAggregate(result.Delivery),
		NeedsApproval: result.NeedsApproval,
		Reasons:       reasons,
	})
}

// GetDelivery handles GET /deliveries/:deliveryId.
func (s *Server) GetDelivery(ctx echo.Context, tenantID, deliveryID kernel.UUID) error {
	query, err := queries.NewGetDeliveryQuery(tenantID, deliveryID)
	if err != nil {
		return fail(ctx, err)
	}

	view, err := s.handlers.GetDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromView(view))
}

// UpdateDelivery handles PATCH /deliveries/:deliveryId.
func (s *Server) UpdateDelivery(ctx echo.Context, tenantID, actorID, deliveryID kernel.UUID) error {
	var body DeliveryPatch
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	patch, err := toPatch(body)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryCommand(tenantID, actorID, deliveryID, patch)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.handlers.UpdateDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	if patch.Status != nil && *patch.Status == delivery.AwaitingApproval {
		s.metrics.RecordDecision("held")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteDelivery handles DELETE /deliveries/:deliveryId.
func (s *Server) DeleteDelivery(ctx echo.Context, tenantID, actorID, deliveryID kernel.UUID) error {
	cmd, err := commands.NewDeleteDeliveryCommand(tenantID, actorID, deliveryID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.handlers.DeleteDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApproveDelivery handles POST /deliveries/:deliveryId/approve.
func (s *Server) ApproveDelivery(ctx echo.Context, tenantID, actorID, deliveryID kernel.UUID) error {
	cmd, err := commands.NewApproveDeliveryCommand(tenantID, actorID, deliveryID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.handlers.ApproveDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	s.metrics.RecordDecision("approved")
	return ctx.NoContent(http.StatusNoContent)
}

// RejectDelivery handles POST /deliveries/:deliveryId/reject.
func (s *Server) RejectDelivery(ctx echo.Context, tenantID, actorID, deliveryID kernel.UUID) error {
	var body Rejection
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRejectDeliveryCommand(tenantID, actorID, deliveryID, body.Reason)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.handlers.RejectDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	s.metrics.RecordDecision("rejected")
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderFromDelivery handles DELETE /deliveries/:deliveryId/orders/:orderId.
func (s *Server) RemoveOrderFromDelivery(ctx echo.Context, tenantID, actorID, deliveryID, orderID kernel.UUID) error {
	cmd, err := commands.NewRemoveOrderFromDeliveryCommand(tenantID, actorID, deliveryID, orderID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.handlers.RemoveOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toPatch(body DeliveryPatch) (commands.DeliveryPatch, error) {
	driverID, err := optionalID("driver id", body.DriverID)
	if err != nil {
		return commands.DeliveryPatch{}, err
	}
	vehicleID, err := optionalID("vehicle id", body.VehicleID)
	if err != nil {
		return commands.DeliveryPatch{}, err
	}
	refs, err := toOrderRefs(body.Orders)
	if err != nil {
		return commands.DeliveryPatch{}, err
	}

	patch := commands.DeliveryPatch{
		DriverID:  driverID,
		VehicleID: vehicleID,
		Note:      body.Note,
		StartDate: body.StartDate,
		Orders:    refs,
	}

	if body.Status != nil {
		status, parseErr := delivery.ParseStatus(*body.Status)
		if parseErr != nil {
			return commands.DeliveryPatch{}, parseErr
		}
		patch.Status = &status
	}

	return patch, nil
}
