package commands

import (
	"errors"
	"slices"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
)

// CreateDeliveryCommand represents a request to build a route for a driver and
// vehicle from a set of unassigned orders.
//
// Example:
//
//	seq := 1
//	cmd, err := NewCreateDeliveryCommand(tenantID, actorID, driverID, vehicleID,
//	    []OrderRef{{OrderID: first, Sequence: &seq}, {OrderID: second}}, "", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if result.NeedsApproval {
//	    fmt.Println(strings.Join(result.Reasons, "\n"))
//	}
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	tenantID  kernel.UUID
	actorID   kernel.UUID
	driverID  kernel.UUID
	vehicleID kernel.UUID
	orders    []OrderRef
	note      string
	startDate *time.Time

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand validates ids and the order list. A nil startDate
// defaults to the beginning of the current day when the command is handled.
func NewCreateDeliveryCommand(
	tenantID, actorID, driverID, vehicleID kernel.UUID,
	orders []OrderRef,
	note string,
	startDate *time.Time,
) (CreateDeliveryCommand, error) {
	if err := errors.Join(
		requireID("tenant id", tenantID),
		requireID("actor id", actorID),
		requireID("driver id", driverID),
		requireID("vehicle id", vehicleID),
		validateOrderRefs(orders),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return CreateDeliveryCommand{
		tenantID:  tenantID,
		actorID:   actorID,
		driverID:  driverID,
		vehicleID: vehicleID,
		orders:    slices.Clone(orders),
		note:      strings.TrimSpace(note),
		startDate: startDate,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c CreateDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c CreateDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreateDeliveryCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c CreateDeliveryCommand) Orders() []OrderRef {
	return c.orders
}

func (c CreateDeliveryCommand) Note() string {
	return c.note
}

// StartDate returns nil when the caller did not choose one.
func (c CreateDeliveryCommand) StartDate() *time.Time {
	return c.startDate
}
