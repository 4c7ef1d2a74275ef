package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrRemoveOrderFromDeliveryCommandIsNotConstructed = errors.New(
		"RemoveOrderFromDeliveryCommand must be created via NewRemoveOrderFromDeliveryCommand constructor",
	)
)

// RemoveOrderFromDeliveryCommand takes one not-yet-started order off a route.
type RemoveOrderFromDeliveryCommand struct { //nolint:recvcheck //using for validation
	tenantID   kernel.UUID
	actorID    kernel.UUID
	deliveryID kernel.UUID
	orderID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveOrderFromDeliveryCommand(
	tenantID, actorID, deliveryID, orderID kernel.UUID,
) (RemoveOrderFromDeliveryCommand, error) {
	if err := errors.Join(
		requireID("tenant id", tenantID),
		requireID("actor id", actorID),
		requireID("delivery id", deliveryID),
		requireID("order id", orderID),
	); err != nil {
		return RemoveOrderFromDeliveryCommand{}, err
	}

	return RemoveOrderFromDeliveryCommand{
		tenantID:   tenantID,
		actorID:    actorID,
		deliveryID: deliveryID,
		orderID:    orderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveOrderFromDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderFromDeliveryCommandIsNotConstructed)
}

func (c RemoveOrderFromDeliveryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c RemoveOrderFromDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c RemoveOrderFromDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c RemoveOrderFromDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}
