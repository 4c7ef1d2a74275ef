package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrDeleteDeliveryCommandIsNotConstructed = errors.New(
		"DeleteDeliveryCommand must be created via NewDeleteDeliveryCommand constructor",
	)
)

// DeleteDeliveryCommand removes a route together with its ledger and payment links.
type DeleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	tenantID   kernel.UUID
	actorID    kernel.UUID
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteDeliveryCommand(tenantID, actorID, deliveryID kernel.UUID) (DeleteDeliveryCommand, error) {
	if err := errors.Join(
		requireID("tenant id", tenantID),
		requireID("actor id", actorID),
		requireID("delivery id", deliveryID),
	); err != nil {
		return DeleteDeliveryCommand{}, err
	}

	return DeleteDeliveryCommand{
		tenantID:   tenantID,
		actorID:    actorID,
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryCommandIsNotConstructed)
}

func (c DeleteDeliveryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c DeleteDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c DeleteDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}
