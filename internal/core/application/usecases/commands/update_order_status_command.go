package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
)

// UpdateOrderStatusCommand is a driver reporting progress on one order.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(tenantID, driverID, orderID,
//	    order.DeliveryFailed, "recipient absent", "R01")
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	tenantID      kernel.UUID
	driverID      kernel.UUID
	orderID       kernel.UUID
	status        order.Status
	failureReason string
	failureCode   string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand rejects a DeliveryFailed request without a reason
// before any data is loaded.
func NewUpdateOrderStatusCommand(
	tenantID, driverID, orderID kernel.UUID,
	status order.Status,
	failureReason, failureCode string,
) (UpdateOrderStatusCommand, error) {
	failureReason = strings.TrimSpace(failureReason)

	var reasonErr error
	if status == order.DeliveryFailed && failureReason == "" {
		reasonErr = errs.NewValueIsRequiredError("failureReason")
	}

	if err := errors.Join(
		requireID("tenant id", tenantID),
		requireID("driver id", driverID),
		requireID("order id", orderID),
		status.Validate(),
		reasonErr,
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		tenantID:      tenantID,
		driverID:      driverID,
		orderID:       orderID,
		status:        status,
		failureReason: failureReason,
		failureCode:   strings.TrimSpace(failureCode),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c UpdateOrderStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c UpdateOrderStatusCommand) FailureReason() string {
	return c.failureReason
}

func (c UpdateOrderStatusCommand) FailureCode() string {
	return c.failureCode
}
