package http

import (
	"fmt"
	"net/http"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	tenantHeader = "X-Tenant-ID"
	actorHeader  = "X-Actor-ID"
)

// GetDeliveriesParams are the optional filters of GET /deliveries.
type GetDeliveriesParams struct {
	Status   *string             `form:"status,omitempty"   json:"status,omitempty"`
	DriverID *openapi_types.UUID `form:"driverId,omitempty" json:"driverId,omitempty"`
}

// ServerInterface lists one method per operation of openapi.yaml with the
// tenant, actor and path parameters already bound.
type ServerInterface interface {
	CreateOrder(ctx echo.Context, tenantID kernel.UUID) error
	GetUnassignedOrders(ctx echo.Context, tenantID kernel.UUID) error
	UpdateOrderStatus(ctx echo.Context, tenantID, actorID, orderID kernel.UUID) error
	GetDeliveries(ctx echo.Context, tenantID kernel.UUID, params GetDeliveriesParams) error
	CreateDelivery(ctx echo.Context, tenantID, actorID kernel.UUID) error
	GetDelivery(ctx echo.Context, tenantID, deliveryID kernel.UUID) error
	UpdateDelivery(ctx echo.Context, tenantID, actorID, deliveryID kernel.UUID) error
	DeleteDelivery(ctx echo.Context, tenantID, actorID, deliveryID kernel.UUID) error
	ApproveDelivery(ctx echo.Context, tenantID, actorID, deliveryID kernel.UUID) error
	RejectDelivery(ctx echo.Context, tenantID, actorID, deliveryID kernel.UUID) error
	RemoveOrderFromDelivery(ctx echo.Context, tenantID, actorID, deliveryID, orderID kernel.UUID) error
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// ServerInterfaceWrapper converts echo contexts to ServerInterface calls.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// RegisterHandlers adds every operation to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/orders", w.CreateOrder)
	router.GET("/orders/unassigned", w.GetUnassignedOrders)
	router.PATCH("/orders/:orderId/status", w.UpdateOrderStatus)
	router.GET("/deliveries", w.GetDeliveries)
	router.POST("/deliveries", w.CreateDelivery)
	router.GET("/deliveries/:deliveryId", w.GetDelivery)
	router.PATCH("/deliveries/:deliveryId", w.UpdateDelivery)
	router.DELETE("/deliveries/:deliveryId", w.DeleteDelivery)
	router.POST("/deliveries/:deliveryId/approve", w.ApproveDelivery)
	router.POST("/deliveries/:deliveryId/reject", w.RejectDelivery)
	router.DELETE("/deliveries/:deliveryId/orders/:orderId", w.RemoveOrderFromDelivery)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	tenantID, err := bindHeader(ctx, tenantHeader)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.CreateOrder(ctx, tenantID)
}

func (w *ServerInterfaceWrapper) GetUnassignedOrders(ctx echo.Context) error {
	tenantID, err := bindHeader(ctx, tenantHeader)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.GetUnassignedOrders(ctx, tenantID)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	tenantID, actorID, err := bindCaller(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	orderID, err := bindPath(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.UpdateOrderStatus(ctx, tenantID, actorID, orderID)
}

func (w *ServerInterfaceWrapper) GetDeliveries(ctx echo.Context) error {
	tenantID, err := bindHeader(ctx, tenantHeader)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var params GetDeliveriesParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return badRequest(ctx, fmt.Sprintf("invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "driverId", ctx.QueryParams(), &params.DriverID)
	if err != nil {
		return badRequest(ctx, fmt.Sprintf("invalid format for parameter driverId: %s", err))
	}

	return w.Handler.GetDeliveries(ctx, tenantID, params)
}

func (w *ServerInterfaceWrapper) CreateDelivery(ctx echo.Context) error {
	tenantID, actorID, err := bindCaller(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.CreateDelivery(ctx, tenantID, actorID)
}

func (w *ServerInterfaceWrapper) GetDelivery(ctx echo.Context) error {
	tenantID, err := bindHeader(ctx, tenantHeader)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	deliveryID, err := bindPath(ctx, "deliveryId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.GetDelivery(ctx, tenantID, deliveryID)
}

func (w *ServerInterfaceWrapper) UpdateDelivery(ctx echo.Context) error {
	tenantID, actorID, deliveryID, err := bindDeliveryCall(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.UpdateDelivery(ctx, tenantID, actorID, deliveryID)
}

func (w *ServerInterfaceWrapper) DeleteDelivery(ctx echo.Context) error {
	tenantID, actorID, deliveryID, err := bindDeliveryCall(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.DeleteDelivery(ctx, tenantID, actorID, deliveryID)
}

func (w *ServerInterfaceWrapper) ApproveDelivery(ctx echo.Context) error {
	tenantID, actorID, deliveryID, err := bindDeliveryCall(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.ApproveDelivery(ctx, tenantID, actorID, deliveryID)
}

func (w *ServerInterfaceWrapper) RejectDelivery(ctx echo.Context) error {
	tenantID, actorID, deliveryID, err := bindDeliveryCall(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.RejectDelivery(ctx, tenantID, actorID, deliveryID)
}

func (w *ServerInterfaceWrapper) RemoveOrderFromDelivery(ctx echo.Context) error {
	tenantID, actorID, deliveryID, err := bindDeliveryCall(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	orderID, err := bindPath(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.RemoveOrderFromDelivery(ctx, tenantID, actorID, deliveryID, orderID)
}

func bindCaller(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	tenantID, err := bindHeader(ctx, tenantHeader)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	actorID, err := bindHeader(ctx, actorHeader)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return tenantID, actorID, nil
}

func bindDeliveryCall(ctx echo.Context) (kernel.UUID, kernel.UUID, kernel.UUID, error) {
	tenantID, actorID, err := bindCaller(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}
	deliveryID, err := bindPath(ctx, "deliveryId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}
	return tenantID, actorID, deliveryID, nil
}

func bindHeader(ctx echo.Context, name string) (kernel.UUID, error) {
	values, found := ctx.Request().Header[http.CanonicalHeaderKey(name)]
	if !found || len(values) == 0 {
		return kernel.UUID{}, fmt.Errorf("header parameter %s is required, but not found", name)
	}
	return bindUUID(runtime.ParamLocationHeader, name, values[0])
}

func bindPath(ctx echo.Context, name string) (kernel.UUID, error) {
	return bindUUID(runtime.ParamLocationPath, name, ctx.Param(name))
}

func bindUUID(location runtime.ParamLocation, name, value string) (kernel.UUID, error) {
	var raw openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", name, value, &raw, runtime.BindStyledParameterOptions{
		ParamLocation: location,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}

	return kernel.UUIDFromBytes(raw[:])
}
